package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Personal portfolio site and terminal edition",
	Long: `folio serves a single-page portfolio with a resizable experience panel,
and ships the same content as a terminal app and as static files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadContent(cfg *config.Config) (*content.Store, error) {
	data, err := content.Load(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return data, nil
}

// newLogger logs JSON in release mode and text otherwise.
func newLogger(w io.Writer, mode string) *slog.Logger {
	if mode == "release" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

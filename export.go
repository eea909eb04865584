package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/theme"
	"github.com/Zachkp/folio/internal/web"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a static copy of the site to a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), cfg.Mode)
		data, err := loadContent(cfg)
		if err != nil {
			return err
		}

		srv, err := web.New(web.Options{
			Config:  cfg,
			Content: data,
			Themes:  theme.NewMemoryStore(),
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		if err := os.MkdirAll(exportOut, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		written, err := srv.Export(exportOut)
		if err != nil {
			return err
		}
		for _, name := range written {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(exportOut, filepath.FromSlash(name)))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "dist", "output directory")
	rootCmd.AddCommand(exportCmd)
}

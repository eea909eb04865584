package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/tui"
)

var tuiSession string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the portfolio in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := loadContent(cfg)
		if err != nil {
			return err
		}
		// The terminal belongs to the UI; store logs are dropped.
		db, err := store.Open(cfg.DBPath, newLogger(io.Discard, cfg.Mode))
		if err != nil {
			return err
		}
		defer db.Close()

		panel := cfg.Sheet.Panel()
		panel.CloseThreshold = cfg.TUI.CloseThresholdCells

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tui.Run(ctx, tui.Options{
			Content: data,
			Themes:  db,
			Session: tuiSession,
			Panel:   panel,
		})
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiSession, "session", tui.DefaultSession, "key for the stored theme preference")
	rootCmd.AddCommand(tuiCmd)
}

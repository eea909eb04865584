package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(os.Stderr, cfg.Mode)

		data, err := loadContent(cfg)
		if err != nil {
			return err
		}
		db, err := store.Open(cfg.DBPath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		srv, err := web.New(web.Options{
			Config:  cfg,
			Content: data,
			Themes:  db,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

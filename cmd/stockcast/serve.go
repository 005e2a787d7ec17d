package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stockcast/internal/pipeline"
	"stockcast/internal/web"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(zapcore.InfoLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			if listen != "" {
				cfg.Server.Listen = listen
			}

			ctx, cancel := signalContext()
			defer cancel()

			p, catalog := pipeline.Build(cfg, log)
			srv := web.NewServer(cfg.Server, p, catalog, log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown failed", zap.Error(err))
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

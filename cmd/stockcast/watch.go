package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"stockcast/internal/pipeline"
	"stockcast/internal/scheduler"
)

func newWatchCmd() *cobra.Command {
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run configured predictions on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(zapcore.InfoLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			if len(cfg.Watch.Jobs) == 0 {
				return fmt.Errorf("no watch.jobs configured in %s", cfgFile)
			}

			ctx, cancel := signalContext()
			defer cancel()

			p, _ := pipeline.Build(cfg, log)
			s := scheduler.NewScheduler(ctx, p, cfg.Watch.Jobs, log)
			if err := s.Register(cfg.Watch.Cron); err != nil {
				return err
			}

			if runOnStart {
				s.RunNow()
			}
			s.Start()
			<-ctx.Done()
			s.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&runOnStart, "run-now", false, "evaluate all jobs once before waiting for the schedule")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"stockcast/internal/pipeline"
	"stockcast/internal/render"
	"stockcast/pkg/model"
)

func newPredictCmd() *cobra.Command {
	var (
		exchange string
		symbol   string
		start    string
		end      string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fetch a stock, forecast its trend and recommend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q: use table or json", format)
			}

			from, to, err := pipeline.ParseDates(start, end, time.Now())
			if err != nil {
				return err
			}

			cfg, log, err := setup(zapcore.WarnLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			p, _ := pipeline.Build(cfg, log)
			req := pipeline.Request{Exchange: exchange, Symbol: symbol, Start: from, End: to}
			return runAndRender(ctx, p, req, format)
		},
	}

	cmd.Flags().StringVar(&exchange, "exchange", "", "exchange code, e.g. NSE, LSE, NYSE")
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol from the exchange's list")
	cmd.Flags().StringVar(&start, "start", pipeline.DefaultStart.Format(pipeline.DateLayout), "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day (YYYY-MM-DD), forecast runs up to it (default today)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	cmd.MarkFlagRequired("exchange")
	cmd.MarkFlagRequired("symbol")

	return cmd
}

// runAndRender runs one pipeline pass behind a spinner and prints the report
func runAndRender(ctx context.Context, p *pipeline.Pipeline, req pipeline.Request, format string) error {
	var report *model.Report
	err := render.WithSpinner(os.Stderr, fmt.Sprintf("Fetching %s", req.Symbol), func() error {
		var err error
		report, err = p.Run(ctx, req)
		return err
	})
	if err != nil {
		return err
	}

	out := render.New(os.Stdout)
	if format == "json" {
		return out.JSON(report)
	}
	return out.Report(report)
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"stockcast/internal/markets"
	"stockcast/internal/render"
)

func newMarketsCmd() *cobra.Command {
	var (
		exchange string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "markets",
		Short: "List exchanges and their symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(zapcore.WarnLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			catalog := markets.NewCatalog(cfg.Markets)
			list := catalog.Markets()
			if exchange != "" {
				m, err := catalog.Market(exchange)
				if err != nil {
					return err
				}
				list = []markets.Market{*m}
			}

			out := render.New(os.Stdout)
			if format == "json" {
				return out.JSON(list)
			}
			return out.Markets(list)
		},
	}

	cmd.Flags().StringVar(&exchange, "exchange", "", "show a single exchange")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	return cmd
}

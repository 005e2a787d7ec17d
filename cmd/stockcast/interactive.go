package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"stockcast/internal/markets"
	"stockcast/internal/pipeline"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Choose exchange, symbol and dates from prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(zapcore.WarnLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			p, catalog := pipeline.Build(cfg, log)

			req, err := promptRequest(catalog)
			if err != nil {
				return err
			}
			return runAndRender(ctx, p, req, "table")
		},
	}
}

// promptRequest asks for exchange, then symbol, then the date window
func promptRequest(catalog *markets.Catalog) (pipeline.Request, error) {
	var req pipeline.Request

	var options []string
	for _, m := range catalog.Markets() {
		options = append(options, m.Code)
	}
	if err := survey.AskOne(&survey.Select{
		Message: "Select exchange:",
		Options: options,
	}, &req.Exchange); err != nil {
		return req, err
	}

	symbols, err := catalog.Symbols(req.Exchange)
	if err != nil {
		return req, err
	}
	if err := survey.AskOne(&survey.Select{
		Message:  "Select stock:",
		Options:  symbols,
		PageSize: 15,
	}, &req.Symbol); err != nil {
		return req, err
	}

	var start, end string
	if err := survey.AskOne(&survey.Input{
		Message: "Start date (YYYY-MM-DD):",
		Default: pipeline.DefaultStart.Format(pipeline.DateLayout),
	}, &start, survey.WithValidator(validDate)); err != nil {
		return req, err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "End date (YYYY-MM-DD):",
		Help:    "Dates after the last trading day are forecast.",
		Default: time.Now().Format(pipeline.DateLayout),
	}, &end, survey.WithValidator(validDate)); err != nil {
		return req, err
	}

	req.Start, req.End, err = pipeline.ParseDates(strings.TrimSpace(start), strings.TrimSpace(end), time.Now())
	return req, err
}

func validDate(val interface{}) error {
	str := strings.TrimSpace(val.(string))
	if _, err := time.Parse(pipeline.DateLayout, str); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// Package pipeline runs one fetch -> predict -> recommend pass and collects
// everything a presentation layer shows into a model.Report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockcast/internal/calendar"
	"stockcast/internal/predictor"
	"stockcast/pkg/model"
)

// Messages shown to the user for informational outcomes
const (
	MsgNoData       = "No data found for the selected stock."
	MsgTooFewPoints = "At least 2 observations are needed to fit a trend."
	MsgNoHorizon    = "No business days between the last observation and the end date; nothing to forecast."
)

// SeriesFetcher downloads a validated price series
type SeriesFetcher interface {
	Fetch(ctx context.Context, exchange, symbol string, start, end time.Time) (model.PriceSeries, error)
}

// Forecaster extrapolates a series up to an end date
type Forecaster interface {
	Predict(series model.PriceSeries, end time.Time) (*predictor.Forecast, error)
}

// Recommender turns history and forecast prices into a signal
type Recommender interface {
	Recommend(series model.PriceSeries, forecast []float64) (model.Recommendation, error)
}

// Request is one user selection
type Request struct {
	Exchange string
	Symbol   string
	Start    time.Time
	End      time.Time
}

// Pipeline wires the three stages together. It holds no per-run state.
type Pipeline struct {
	fetcher     SeriesFetcher
	forecaster  Forecaster
	recommender Recommender
	tailRows    int
	logger      *zap.Logger
}

// New creates a pipeline
func New(f SeriesFetcher, fc Forecaster, r Recommender, tailRows int, logger *zap.Logger) *Pipeline {
	if tailRows <= 0 {
		tailRows = 5
	}
	return &Pipeline{
		fetcher:     f,
		forecaster:  fc,
		recommender: r,
		tailRows:    tailRows,
		logger:      logger.With(zap.String("component", "pipeline")),
	}
}

// Run executes the pipeline. Validation and provider failures are returned
// as errors; no data, too little data and an empty horizon end the run
// early with a message in Report.Warnings.
func (p *Pipeline) Run(ctx context.Context, req Request) (*model.Report, error) {
	report := &model.Report{
		ID:          uuid.NewString(),
		Range:       model.DateRange{Start: calendar.Day(req.Start), End: calendar.Day(req.End)},
		GeneratedAt: time.Now().UTC(),
	}
	logger := p.logger.With(zap.String("report_id", report.ID))

	series, err := p.fetcher.Fetch(ctx, req.Exchange, req.Symbol, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	report.Stock = series.Stock
	report.Bars = series.Len()

	if series.IsEmpty() {
		report.NoData = true
		report.Warnings = append(report.Warnings, MsgNoData)
		logger.Info("no data, skipping prediction", zap.String("ticker", series.Stock.Ticker))
		return report, nil
	}

	report.Tail = series.Tail(p.tailRows)
	report.Chart = chartData(series)

	forecast, err := p.forecaster.Predict(series, req.End)
	if errors.Is(err, predictor.ErrInsufficientData) {
		report.Warnings = append(report.Warnings, MsgTooFewPoints)
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("predicting: %w", err)
	}

	report.Trend = forecast.Model.Summary()
	report.RequestedDays = forecast.Requested
	report.HorizonCapped = forecast.Capped
	if forecast.Capped {
		report.Warnings = append(report.Warnings, forecast.Warning)
	}

	if forecast.Len() == 0 {
		report.Warnings = append(report.Warnings, MsgNoHorizon)
		return report, nil
	}
	report.Forecast = forecast.Points()
	report.Chart.Forecast = report.Forecast

	rec, err := p.recommender.Recommend(series, forecast.Prices)
	if err != nil {
		return nil, fmt.Errorf("recommending: %w", err)
	}
	report.Recommendation = &rec

	logger.Info("pipeline complete",
		zap.String("ticker", series.Stock.Ticker),
		zap.Int("bars", series.Len()),
		zap.Int("forecast_days", forecast.Len()),
		zap.String("signal", string(rec.Signal)),
	)
	return report, nil
}

func chartData(series model.PriceSeries) *model.ChartData {
	n := series.Len()
	c := &model.ChartData{
		Dates: make([]time.Time, n),
		Open:  make([]float64, n),
		High:  make([]float64, n),
		Low:   make([]float64, n),
		Close: make([]float64, n),
	}
	for i, b := range series.Bars {
		c.Dates[i] = b.Date
		c.Open[i] = b.Open
		c.High[i] = b.High
		c.Low[i] = b.Low
		c.Close[i] = b.Close
	}
	return c
}

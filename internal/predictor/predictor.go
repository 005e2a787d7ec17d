// Package predictor fits a linear trend to a price series and extrapolates
// it over the following business days.
package predictor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"stockcast/internal/calendar"
	"stockcast/pkg/model"
)

// DefaultMaxHorizon is the forecast cap in business days
const DefaultMaxHorizon = 365

// Forecast holds index-aligned future dates and predicted prices
type Forecast struct {
	Dates     []time.Time
	Prices    []float64
	Model     TrendModel
	Requested int    // business days up to the end date, before capping
	Capped    bool   // Requested exceeded the horizon cap
	Warning   string // user-facing message when Capped
}

// Len returns the number of forecast days
func (f *Forecast) Len() int {
	return len(f.Dates)
}

// Points pairs each date with its predicted price
func (f *Forecast) Points() []model.ForecastPoint {
	points := make([]model.ForecastPoint, len(f.Dates))
	for i := range f.Dates {
		points[i] = model.ForecastPoint{Date: f.Dates[i], Price: f.Prices[i]}
	}
	return points
}

// Predictor produces forecasts with a bounded horizon
type Predictor struct {
	maxHorizon int
	logger     *zap.Logger
}

// New creates a predictor. A non-positive maxHorizon uses DefaultMaxHorizon.
func New(maxHorizon int, logger *zap.Logger) *Predictor {
	if maxHorizon <= 0 {
		maxHorizon = DefaultMaxHorizon
	}
	return &Predictor{
		maxHorizon: maxHorizon,
		logger:     logger.With(zap.String("component", "predictor")),
	}
}

// Predict fits the series and extrapolates over the business days after the
// last observation up to and including end, capped at the max horizon.
// An end date on or before the last observation gives an empty forecast.
func (p *Predictor) Predict(series model.PriceSeries, end time.Time) (*Forecast, error) {
	trend, err := Fit(series)
	if err != nil {
		return nil, err
	}

	last := series.Last().Date
	requested := calendar.CountBusinessDays(last, end)
	horizon := requested

	f := &Forecast{Model: trend, Requested: requested}
	if horizon > p.maxHorizon {
		f.Capped = true
		f.Warning = fmt.Sprintf("The period exceeds %d business days. Limiting to %d business days.", p.maxHorizon, p.maxHorizon)
		p.logger.Warn("forecast horizon capped",
			zap.String("ticker", series.Stock.Ticker),
			zap.Int("requested", requested),
			zap.Int("cap", p.maxHorizon),
		)
		horizon = p.maxHorizon
	}

	f.Dates = calendar.NextBusinessDays(last, horizon)
	f.Prices = make([]float64, len(f.Dates))
	for i, d := range f.Dates {
		f.Prices[i] = trend.At(d)
	}
	return f, nil
}

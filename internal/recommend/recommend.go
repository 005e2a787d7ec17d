// Package recommend turns a price history and its forecast into a
// Buy/Sell/Hold signal.
package recommend

import (
	"errors"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"stockcast/pkg/model"
)

// DefaultRecentWindow is how many trailing closes make up the recent average
const DefaultRecentWindow = 5

var (
	// ErrEmptySeries is returned when there is no close to average
	ErrEmptySeries = errors.New("recommendation needs at least one close")
	// ErrEmptyForecast is returned when there is no predicted price to average
	ErrEmptyForecast = errors.New("recommendation needs at least one predicted price")
)

// Engine compares the recent average close with the predicted average
type Engine struct {
	window int
}

// New creates an engine averaging the last window closes
func New(window int) *Engine {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &Engine{window: window}
}

// Recommend averages the last closes of series and all forecast prices and
// compares them.
func (e *Engine) Recommend(series model.PriceSeries, forecast []float64) (model.Recommendation, error) {
	if series.IsEmpty() {
		return model.Recommendation{}, ErrEmptySeries
	}
	if len(forecast) == 0 {
		return model.Recommendation{}, ErrEmptyForecast
	}

	closes := series.Closes()
	if len(closes) > e.window {
		closes = closes[len(closes)-e.window:]
	}

	recent := stat.Mean(closes, nil)
	predicted := stat.Mean(forecast, nil)

	return model.Recommendation{
		Signal:              Decide(recent, predicted),
		RecentAvg:           recent,
		PredictedAvg:        predicted,
		RecentAvgDisplay:    FormatCurrency(recent),
		PredictedAvgDisplay: FormatCurrency(predicted),
	}, nil
}

// Decide maps the two averages to a signal. Only exact equality holds.
func Decide(recentAvg, predictedAvg float64) model.SignalType {
	switch {
	case predictedAvg > recentAvg:
		return model.SignalBuy
	case predictedAvg < recentAvg:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}

// Round2 rounds half away from zero to two decimal places, working on the
// shortest decimal form of v so 100.005 becomes 100.01.
func Round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FormatCurrency renders v as dollars with exactly two decimals
func FormatCurrency(v float64) string {
	d := Round2(v)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

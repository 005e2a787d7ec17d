package predictor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sajari/regression"
	"gonum.org/v1/gonum/stat"

	"stockcast/internal/calendar"
	"stockcast/pkg/model"
)

// MinFitPoints is the smallest series a line can be fitted to
const MinFitPoints = 2

// ErrInsufficientData is returned when a series is too short to fit
var ErrInsufficientData = errors.New("not enough observations to fit a trend")

// TrendModel is an ordinary least-squares line of close price against day
// ordinal. The fit is done on ordinals shifted by Origin, which leaves the
// line unchanged and keeps the normal equations well conditioned.
type TrendModel struct {
	Origin int64   // ordinal of the first observation
	Slope  float64 // price change per calendar day
	Level  float64 // fitted price at Origin
	R2     float64
	Points int
}

// Intercept returns the line's value at ordinal 0
func (m TrendModel) Intercept() float64 {
	return m.Level - m.Slope*float64(m.Origin)
}

// At evaluates the line at t's day ordinal
func (m TrendModel) At(t time.Time) float64 {
	return m.AtOrdinal(calendar.Ordinal(t))
}

// AtOrdinal evaluates the line at a day ordinal
func (m TrendModel) AtOrdinal(ordinal int64) float64 {
	return m.Level + m.Slope*float64(ordinal-m.Origin)
}

// Summary converts the model for display
func (m TrendModel) Summary() *model.TrendSummary {
	return &model.TrendSummary{
		Slope:     m.Slope,
		Intercept: m.Intercept(),
		R2:        m.R2,
		Points:    m.Points,
	}
}

// Fit fits close price against date ordinal over the whole series
func Fit(series model.PriceSeries) (TrendModel, error) {
	if series.Len() < MinFitPoints {
		return TrendModel{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, series.Len(), MinFitPoints)
	}

	origin := calendar.Ordinal(series.Bars[0].Date)

	xs := make([]float64, series.Len())
	ys := make([]float64, series.Len())
	for i, b := range series.Bars {
		xs[i] = float64(calendar.Ordinal(b.Date) - origin)
		ys[i] = b.Close
	}

	level, slope, r2, err := fitRegression(xs, ys)
	if err != nil {
		// sajari only trains on more than two points
		level, slope = stat.LinearRegression(xs, ys, nil, false)
		r2 = stat.RSquared(xs, ys, nil, level, slope)
	}

	// Undefined for a constant series
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		r2 = 0
	}

	return TrendModel{
		Origin: origin,
		Slope:  slope,
		Level:  level,
		R2:     r2,
		Points: series.Len(),
	}, nil
}

// fitRegression runs ordinary least squares of ys on xs and returns the
// value at x = 0, the slope and R2.
func fitRegression(xs, ys []float64) (level, slope, r2 float64, err error) {
	r := new(regression.Regression)
	r.SetObserved("close")
	r.SetVar(0, "ordinal")
	for i := range xs {
		r.Train(regression.DataPoint(ys[i], []float64{xs[i]}))
	}
	if err = r.Run(); err != nil {
		return 0, 0, 0, err
	}
	return r.Coeff(0), r.Coeff(1), r.R2, nil
}

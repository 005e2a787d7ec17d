package model

import "time"

// Bar represents a single daily OHLC observation
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Stock represents a selectable instrument
type Stock struct {
	Symbol   string `json:"symbol"`
	Ticker   string `json:"ticker"`   // provider-specific identifier
	Exchange string `json:"exchange"` // NSE, BSE, LSE, NYSE, NASDAQ
}

// PriceSeries is an ordered sequence of daily bars for one ticker.
// Dates are strictly increasing. An empty series means "no data".
type PriceSeries struct {
	Stock Stock `json:"stock"`
	Bars  []Bar `json:"bars"`
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// IsEmpty reports whether the series holds no bars
func (s *PriceSeries) IsEmpty() bool {
	return len(s.Bars) == 0
}

// Last returns the most recent bar. The series must not be empty.
func (s *PriceSeries) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}

// Closes returns the closing prices in date order
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Tail returns up to n most recent bars
func (s *PriceSeries) Tail(n int) []Bar {
	if n >= len(s.Bars) {
		return s.Bars
	}
	return s.Bars[len(s.Bars)-n:]
}

// DateRange is an inclusive calendar window
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether Start is not after End
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// ForecastPoint is one predicted price on a future business day
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// SignalType is the discrete recommendation label
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

// Recommendation is the signal plus the two averages that produced it
type Recommendation struct {
	Signal              SignalType `json:"signal"`
	RecentAvg           float64    `json:"recent_avg"`
	PredictedAvg        float64    `json:"predicted_avg"`
	RecentAvgDisplay    string     `json:"recent_avg_display"` // e.g. "$100.01"
	PredictedAvgDisplay string     `json:"predicted_avg_display"`
}

// TrendSummary describes the fitted line for display
type TrendSummary struct {
	Slope     float64 `json:"slope"`     // price change per calendar day
	Intercept float64 `json:"intercept"` // price at ordinal 0
	R2        float64 `json:"r2"`
	Points    int     `json:"points"`
}

// ChartData holds the series a presentation layer plots
type ChartData struct {
	Dates    []time.Time     `json:"dates"`
	Open     []float64       `json:"open"`
	High     []float64       `json:"high"`
	Low      []float64       `json:"low"`
	Close    []float64       `json:"close"`
	Forecast []ForecastPoint `json:"forecast,omitempty"`
}

// Report is the full result of one fetch/predict/recommend run
type Report struct {
	ID             string          `json:"id"`
	Stock          Stock           `json:"stock"`
	Range          DateRange       `json:"range"`
	NoData         bool            `json:"no_data"`
	Bars           int             `json:"bars"`
	Tail           []Bar           `json:"tail,omitempty"`
	Trend          *TrendSummary   `json:"trend,omitempty"`
	Forecast       []ForecastPoint `json:"forecast,omitempty"`
	HorizonCapped  bool            `json:"horizon_capped"`
	RequestedDays  int             `json:"requested_days"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
	Chart          *ChartData      `json:"chart,omitempty"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

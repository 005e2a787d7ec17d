// Package fetcher turns an exchange/symbol/date-range selection into a
// validated PriceSeries.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stockcast/internal/calendar"
	"stockcast/internal/markets"
	"stockcast/internal/provider"
	"stockcast/pkg/model"
)

// ErrInvalidRange is returned when the start date is after the end date
var ErrInvalidRange = errors.New("start date is after end date")

// Fetcher validates selections against the catalog and downloads bars
type Fetcher struct {
	catalog  *markets.Catalog
	provider provider.Provider
	logger   *zap.Logger
}

// New creates a fetcher
func New(catalog *markets.Catalog, p provider.Provider, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		catalog:  catalog,
		provider: p,
		logger:   logger.With(zap.String("component", "fetcher")),
	}
}

// Fetch downloads daily bars for symbol on exchange over [start, end].
// A provider with nothing to return yields an empty series and no error.
func (f *Fetcher) Fetch(ctx context.Context, exchange, symbol string, start, end time.Time) (model.PriceSeries, error) {
	stock, err := f.catalog.Resolve(exchange, symbol)
	if err != nil {
		return model.PriceSeries{}, err
	}

	window := model.DateRange{Start: calendar.Day(start), End: calendar.Day(end)}
	if !window.Valid() {
		return model.PriceSeries{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
	}

	series := model.PriceSeries{Stock: stock}
	logger := f.logger.With(zap.String("ticker", stock.Ticker))

	bars, err := f.provider.GetDailyBars(ctx, stock.Ticker, window.Start, window.End)
	if errors.Is(err, provider.ErrNoData) {
		logger.Info("no data for ticker")
		return series, nil
	}
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("fetching %s: %w", stock.Ticker, err)
	}

	series.Bars = normalize(bars, window)
	logger.Info("fetched daily bars",
		zap.Int("bars", len(series.Bars)),
		zap.Int("dropped", len(bars)-len(series.Bars)),
	)
	return series, nil
}

// normalize keeps bars inside the window and enforces strictly increasing
// dates. On a repeated date the later bar wins.
func normalize(bars []model.Bar, window model.DateRange) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	for _, b := range bars {
		b.Date = calendar.Day(b.Date)
		if b.Date.Before(window.Start) || b.Date.After(window.End) {
			continue
		}
		if n := len(out); n > 0 {
			last := out[n-1].Date
			if b.Date.Equal(last) {
				out[n-1] = b
				continue
			}
			if b.Date.Before(last) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

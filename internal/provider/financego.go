package provider

import (
	"context"
	"fmt"
	"sort"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"stockcast/internal/calendar"
	"stockcast/pkg/model"
)

// FinanceGoProvider implements Provider with the piquette/finance-go chart
// client. It is used as the fallback when the direct chart call fails.
type FinanceGoProvider struct{}

// NewFinanceGoProvider creates a new finance-go backed provider
func NewFinanceGoProvider() *FinanceGoProvider {
	return &FinanceGoProvider{}
}

// Name returns the provider name
func (p *FinanceGoProvider) Name() string {
	return "finance-go"
}

// IsAvailable always returns true (no API key needed)
func (p *FinanceGoProvider) IsAvailable() bool {
	return true
}

// GetDailyBars fetches daily bars for the inclusive window [start, end].
// The client does not take a context, so cancellation is only checked
// before the call.
func (p *FinanceGoProvider) GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]model.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from := calendar.Day(start)
	to := calendar.Day(end).AddDate(0, 0, 1)
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var raw []*finance.ChartBar
	for iter.Next() {
		raw = append(raw, iter.Bar())
	}
	if err := iter.Err(); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("chart: %w", err), Retryable: false}
	}
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	// Meta is only populated after a successful response
	loc := time.FixedZone("exchange", iter.Meta().Gmtoffset)

	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.Bar{
			Date:   calendar.Day(time.Unix(int64(b.Timestamp), 0).In(loc)),
			Open:   toFloat(b.Open),
			High:   toFloat(b.High),
			Low:    toFloat(b.Low),
			Close:  toFloat(b.Close),
			Volume: int64(b.Volume),
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars, nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

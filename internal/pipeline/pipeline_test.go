package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"stockcast/internal/calendar"
	"stockcast/internal/config"
	"stockcast/internal/markets"
	"stockcast/internal/predictor"
	"stockcast/internal/recommend"
	"stockcast/pkg/model"
)

type fakeFetcher struct {
	series model.PriceSeries
	err    error
}

func (f *fakeFetcher) Fetch(ctx context.Context, exchange, symbol string, start, end time.Time) (model.PriceSeries, error) {
	return f.series, f.err
}

type spyForecaster struct {
	inner Forecaster
	calls int
}

func (s *spyForecaster) Predict(series model.PriceSeries, end time.Time) (*predictor.Forecast, error) {
	s.calls++
	return s.inner.Predict(series, end)
}

type spyRecommender struct {
	inner Recommender
	calls int
}

func (s *spyRecommender) Recommend(series model.PriceSeries, forecast []float64) (model.Recommendation, error) {
	s.calls++
	return s.inner.Recommend(series, forecast)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// risingSeries has n business-day bars with close rising by 1 per day
func risingSeries(n int) model.PriceSeries {
	var bars []model.Bar
	for d := day(2024, 1, 1); len(bars) < n; d = d.AddDate(0, 0, 1) {
		if !calendar.IsBusinessDay(d) {
			continue
		}
		c := 100 + float64(len(bars))
		bars = append(bars, model.Bar{Date: d, Open: c - 1, High: c + 1, Low: c - 2, Close: c})
	}
	return model.PriceSeries{Stock: model.Stock{Symbol: "AAPL", Ticker: "AAPL", Exchange: "NYSE"}, Bars: bars}
}

func newTestPipeline(f SeriesFetcher) (*Pipeline, *spyForecaster, *spyRecommender) {
	fc := &spyForecaster{inner: predictor.New(predictor.DefaultMaxHorizon, zap.NewNop())}
	rc := &spyRecommender{inner: recommend.New(recommend.DefaultRecentWindow)}
	return New(f, fc, rc, 5, zap.NewNop()), fc, rc
}

func TestRunFullPipeline(t *testing.T) {
	series := risingSeries(30)
	p, fc, rc := newTestPipeline(&fakeFetcher{series: series})

	end := series.Last().Date.AddDate(0, 0, 14)
	report, err := p.Run(context.Background(), Request{Exchange: "NYSE", Symbol: "AAPL", Start: day(2024, 1, 1), End: end})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if fc.calls != 1 || rc.calls != 1 {
		t.Errorf("Expected one predict and one recommend call, got %d and %d", fc.calls, rc.calls)
	}
	if report.ID == "" {
		t.Error("Expected a report id")
	}
	if report.NoData {
		t.Error("Report should have data")
	}
	if report.Bars != 30 || len(report.Tail) != 5 {
		t.Errorf("Expected 30 bars and a 5-row tail, got %d and %d", report.Bars, len(report.Tail))
	}
	if report.Tail[4].Close != series.Last().Close {
		t.Error("Tail should end with the last bar")
	}
	if len(report.Forecast) != 10 {
		t.Errorf("Expected 10 forecast days, got %d", len(report.Forecast))
	}
	if report.Chart == nil || len(report.Chart.Close) != 30 || len(report.Chart.Forecast) != 10 {
		t.Error("Expected chart data for history and forecast")
	}
	if report.Recommendation == nil || report.Recommendation.Signal != model.SignalBuy {
		t.Errorf("Expected BUY for a rising series, got %+v", report.Recommendation)
	}
	if report.Trend == nil || report.Trend.Slope <= 0 {
		t.Errorf("Expected positive slope, got %+v", report.Trend)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}
}

func TestRunEmptySeriesShortCircuits(t *testing.T) {
	p, fc, rc := newTestPipeline(&fakeFetcher{series: model.PriceSeries{Stock: model.Stock{Symbol: "ZZZ"}}})

	report, err := p.Run(context.Background(), Request{Exchange: "NYSE", Symbol: "ZZZ", Start: day(2024, 1, 1), End: day(2024, 6, 1)})
	if err != nil {
		t.Fatalf("No data should not be an error: %v", err)
	}
	if !report.NoData {
		t.Error("Expected NoData")
	}
	if fc.calls != 0 || rc.calls != 0 {
		t.Errorf("Predict and recommend must not run on empty data, got %d and %d calls", fc.calls, rc.calls)
	}
	if len(report.Warnings) != 1 || report.Warnings[0] != MsgNoData {
		t.Errorf("Expected no-data message, got %v", report.Warnings)
	}
}

func TestRunSinglePoint(t *testing.T) {
	p, _, rc := newTestPipeline(&fakeFetcher{series: risingSeries(1)})

	report, err := p.Run(context.Background(), Request{End: day(2024, 6, 1)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Forecast != nil || report.Recommendation != nil {
		t.Error("Single observation should not produce a forecast")
	}
	if rc.calls != 0 {
		t.Error("Recommend must not run without a forecast")
	}
	if len(report.Tail) != 1 {
		t.Errorf("Tail should still be shown, got %d rows", len(report.Tail))
	}
	if len(report.Warnings) != 1 || report.Warnings[0] != MsgTooFewPoints {
		t.Errorf("Expected too-few-points message, got %v", report.Warnings)
	}
}

func TestRunTwoPoints(t *testing.T) {
	series := risingSeries(2)
	p, fc, rc := newTestPipeline(&fakeFetcher{series: series})

	report, err := p.Run(context.Background(), Request{End: series.Last().Date.AddDate(0, 0, 7)})
	if err != nil {
		t.Fatalf("Two observations should forecast, got %v", err)
	}
	if fc.calls != 1 || rc.calls != 1 {
		t.Errorf("Expected one predict and one recommend call, got %d and %d", fc.calls, rc.calls)
	}
	if len(report.Forecast) != 5 {
		t.Errorf("Expected 5 forecast days, got %d", len(report.Forecast))
	}
	if report.Trend == nil || report.Trend.Points != 2 {
		t.Errorf("Expected a two-point trend, got %+v", report.Trend)
	}
	if report.Recommendation == nil || report.Recommendation.Signal != model.SignalBuy {
		t.Errorf("Expected BUY for a rising pair, got %+v", report.Recommendation)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}
}

func TestRunNoHorizon(t *testing.T) {
	series := risingSeries(10)
	p, _, rc := newTestPipeline(&fakeFetcher{series: series})

	report, err := p.Run(context.Background(), Request{End: series.Last().Date})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rc.calls != 0 {
		t.Error("Recommend must not run on an empty forecast")
	}
	if report.Trend == nil {
		t.Error("Trend should still be reported")
	}
	if len(report.Warnings) != 1 || report.Warnings[0] != MsgNoHorizon {
		t.Errorf("Expected no-horizon message, got %v", report.Warnings)
	}
}

func TestRunCappedHorizon(t *testing.T) {
	series := risingSeries(10)
	p, _, _ := newTestPipeline(&fakeFetcher{series: series})

	report, err := p.Run(context.Background(), Request{End: series.Last().Date.AddDate(3, 0, 0)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !report.HorizonCapped || len(report.Forecast) != 365 {
		t.Errorf("Expected capped 365-day forecast, got capped=%v len=%d", report.HorizonCapped, len(report.Forecast))
	}
	if report.RequestedDays <= 365 {
		t.Errorf("Expected requested days above the cap, got %d", report.RequestedDays)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "365") {
		t.Errorf("Expected cap warning, got %v", report.Warnings)
	}
	if report.Recommendation == nil {
		t.Error("Capped run should still recommend")
	}
}

func TestRunFetchError(t *testing.T) {
	p, fc, _ := newTestPipeline(&fakeFetcher{err: markets.ErrUnknownSymbol})

	_, err := p.Run(context.Background(), Request{Exchange: "NYSE", Symbol: "NOPE"})
	if !errors.Is(err, markets.ErrUnknownSymbol) {
		t.Errorf("Expected fetch error to propagate, got %v", err)
	}
	if fc.calls != 0 {
		t.Error("Predict must not run after a fetch error")
	}
}

func TestBuild(t *testing.T) {
	p, catalog := Build(config.DefaultConfig(), zap.NewNop())
	if p == nil || catalog == nil {
		t.Fatal("Expected pipeline and catalog")
	}
	if len(catalog.Codes()) != 5 {
		t.Errorf("Expected 5 markets, got %d", len(catalog.Codes()))
	}
}

package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockcast/pkg/model"
)

type stubProvider struct {
	name      string
	available bool
	bars      []model.Bar
	err       error
	calls     int
}

func (s *stubProvider) Name() string      { return s.name }
func (s *stubProvider) IsAvailable() bool { return s.available }

func (s *stubProvider) GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]model.Bar, error) {
	s.calls++
	return s.bars, s.err
}

func TestFallbackProviderSkipsUnavailable(t *testing.T) {
	off := &stubProvider{name: "off"}
	on := &stubProvider{name: "on", available: true}

	f := NewFallbackProvider(off, on)
	if len(f.Providers()) != 1 || f.Providers()[0].Name() != "on" {
		t.Errorf("Expected only available providers, got %d", len(f.Providers()))
	}
	if !f.IsAvailable() {
		t.Error("Fallback with one provider should be available")
	}
	if NewFallbackProvider(off).IsAvailable() {
		t.Error("Fallback with no available providers should not be available")
	}
}

func TestFallbackProviderFailover(t *testing.T) {
	failing := &stubProvider{name: "a", available: true, err: &ProviderError{Provider: "a", Err: errors.New("status 502"), Retryable: true}}
	working := &stubProvider{name: "b", available: true, bars: []model.Bar{{Close: 1}}}

	f := NewFallbackProvider(failing, working)
	bars, err := f.GetDailyBars(context.Background(), "AAPL", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Errorf("Expected bars from second provider, got %d", len(bars))
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Errorf("Expected one call each, got %d and %d", failing.calls, working.calls)
	}
}

func TestFallbackProviderNoDataIsFinal(t *testing.T) {
	empty := &stubProvider{name: "a", available: true, err: ErrNoData}
	other := &stubProvider{name: "b", available: true, bars: []model.Bar{{Close: 1}}}

	f := NewFallbackProvider(empty, other)
	_, err := f.GetDailyBars(context.Background(), "ZZZZ", time.Now(), time.Now())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
	if other.calls != 0 {
		t.Error("No-data answer should not fall through to the next provider")
	}
}

func TestFallbackProviderAllFail(t *testing.T) {
	a := &stubProvider{name: "a", available: true, err: errors.New("first")}
	b := &stubProvider{name: "b", available: true, err: errors.New("second")}

	_, err := NewFallbackProvider(a, b).GetDailyBars(context.Background(), "AAPL", time.Now(), time.Now())
	if err == nil || err.Error() != "second" {
		t.Errorf("Expected last error, got %v", err)
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Provider: "yahoo", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ProviderError should unwrap to its cause")
	}
	if err.Error() != "yahoo: boom" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

package provider

import (
	"context"
	"errors"
	"time"

	"stockcast/pkg/model"
)

// ErrNoData means the provider has no bars for the ticker and window.
// It is data absence, not a fault.
var ErrNoData = errors.New("no data available")

// Provider defines the interface for market-data providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetDailyBars fetches daily OHLC bars for ticker between start and end,
	// both dates inclusive. Bars are returned oldest first.
	GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]model.Bar, error)

	// IsAvailable reports whether the provider can be used
	IsAvailable() bool
}

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FallbackProvider tries multiple providers in order
type FallbackProvider struct {
	providers []Provider
}

// NewFallbackProvider creates a new fallback provider
func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	// Filter to only available providers
	available := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.IsAvailable() {
			available = append(available, p)
		}
	}
	return &FallbackProvider{providers: available}
}

// Name returns the combined provider name
func (f *FallbackProvider) Name() string {
	return "fallback"
}

// GetDailyBars tries each provider in order until one answers. A "no data"
// answer is final; only failures move on to the next provider.
func (f *FallbackProvider) GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]model.Bar, error) {
	lastErr := errors.New("no providers configured")
	for _, p := range f.providers {
		bars, err := p.GetDailyBars(ctx, ticker, start, end)
		if err == nil || errors.Is(err, ErrNoData) {
			return bars, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, lastErr
}

// IsAvailable returns true if any provider is available
func (f *FallbackProvider) IsAvailable() bool {
	return len(f.providers) > 0
}

// Providers returns the list of underlying providers
func (f *FallbackProvider) Providers() []Provider {
	return f.providers
}

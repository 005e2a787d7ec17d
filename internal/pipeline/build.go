package pipeline

import (
	"go.uber.org/zap"

	"stockcast/internal/config"
	"stockcast/internal/fetcher"
	"stockcast/internal/markets"
	"stockcast/internal/predictor"
	"stockcast/internal/provider"
	"stockcast/internal/recommend"
)

// Build wires a pipeline from configuration: the Yahoo chart provider,
// optionally backed by finance-go, the catalog, predictor and engine.
func Build(cfg *config.Config, logger *zap.Logger) (*Pipeline, *markets.Catalog) {
	catalog := markets.NewCatalog(cfg.Markets)

	providers := []provider.Provider{provider.NewYahooProvider(cfg.Provider)}
	if cfg.Provider.Fallback {
		providers = append(providers, provider.NewFinanceGoProvider())
	}
	fb := provider.NewFallbackProvider(providers...)

	names := make([]string, 0, len(fb.Providers()))
	for _, p := range fb.Providers() {
		names = append(names, p.Name())
	}
	logger.Debug("providers configured", zap.Strings("providers", names))

	p := New(
		fetcher.New(catalog, fb, logger),
		predictor.New(cfg.Forecast.MaxHorizon, logger),
		recommend.New(cfg.Forecast.RecentWindow),
		cfg.Forecast.TailRows,
		logger,
	)
	return p, catalog
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Forecast.MaxHorizon != 365 {
		t.Errorf("Expected max horizon 365, got %d", cfg.Forecast.MaxHorizon)
	}
	if cfg.Forecast.RecentWindow != 5 {
		t.Errorf("Expected recent window 5, got %d", cfg.Forecast.RecentWindow)
	}
	if cfg.Markets.Home != "NSE" {
		t.Errorf("Expected home market NSE, got %s", cfg.Markets.Home)
	}
	if len(cfg.Markets.List) != 5 {
		t.Errorf("Expected 5 default markets, got %d", len(cfg.Markets.List))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Provider.RateLimit != 30 {
		t.Errorf("Expected default rate limit 30, got %d", cfg.Provider.RateLimit)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
provider:
  rate_limit: 10
  timeout: 5s
forecast:
  max_horizon: 100
markets:
  home: NYSE
  list:
    - code: NYSE
      symbols: [AAPL, MSFT]
    - code: LSE
      suffix: .L
      symbols: [VOD]
watch:
  jobs:
    - exchange: NYSE
      symbol: AAPL
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Provider.RateLimit != 10 {
		t.Errorf("Expected rate limit 10, got %d", cfg.Provider.RateLimit)
	}
	if cfg.Provider.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", cfg.Provider.Timeout)
	}
	if cfg.Forecast.MaxHorizon != 100 {
		t.Errorf("Expected max horizon 100, got %d", cfg.Forecast.MaxHorizon)
	}
	// Unset fields keep their defaults
	if cfg.Forecast.RecentWindow != 5 {
		t.Errorf("Expected recent window default 5, got %d", cfg.Forecast.RecentWindow)
	}
	if len(cfg.Markets.List) != 2 || cfg.Markets.List[1].Suffix != ".L" {
		t.Errorf("Expected market list from file, got %+v", cfg.Markets.List)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Loaded config should validate: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STOCKCAST_HOME_MARKET", "nyse")
	t.Setenv("STOCKCAST_LISTEN", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Markets.Home != "NYSE" {
		t.Errorf("Expected home NYSE from env, got %s", cfg.Markets.Home)
	}
	if cfg.Server.Listen != ":9999" {
		t.Errorf("Expected listen :9999 from env, got %s", cfg.Server.Listen)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("provider: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero horizon", func(c *Config) { c.Forecast.MaxHorizon = 0 }, "max_horizon"},
		{"zero window", func(c *Config) { c.Forecast.RecentWindow = 0 }, "recent_window"},
		{"no markets", func(c *Config) { c.Markets.List = nil }, "at least one market"},
		{"unknown home", func(c *Config) { c.Markets.Home = "TSE" }, "not a configured market"},
		{"empty market", func(c *Config) { c.Markets.List[0].Symbols = nil }, "no symbols"},
		{"duplicate market", func(c *Config) {
			c.Markets.List = append(c.Markets.List, MarketConfig{Code: "nyse", Symbols: []string{"X"}})
		}, "duplicate market"},
		{"incomplete job", func(c *Config) { c.Watch.Jobs = []WatchJob{{Exchange: "NYSE"}} }, "watch.jobs[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

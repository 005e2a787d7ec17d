package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Forecast ForecastConfig `yaml:"forecast"`
	Markets  MarketsConfig  `yaml:"markets"`
	Server   ServerConfig   `yaml:"server"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ProviderConfig holds market-data provider settings
type ProviderConfig struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit int           `yaml:"rate_limit"` // requests per minute
	Proxy     string        `yaml:"proxy"`
	Fallback  bool          `yaml:"fallback"` // try finance-go when the chart API fails
}

// ForecastConfig holds prediction and recommendation settings
type ForecastConfig struct {
	MaxHorizon   int `yaml:"max_horizon"`   // business days
	RecentWindow int `yaml:"recent_window"` // closes averaged for the recommendation
	TailRows     int `yaml:"tail_rows"`
}

// MarketsConfig is the exchange -> candidate symbols table
type MarketsConfig struct {
	Home string         `yaml:"home"` // symbols used as-is for this market
	List []MarketConfig `yaml:"list"`
}

// MarketConfig describes one exchange
type MarketConfig struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Suffix  string   `yaml:"suffix"`
	Symbols []string `yaml:"symbols"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Listen         string        `yaml:"listen"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// WatchConfig holds scheduled pipeline runs
type WatchConfig struct {
	Cron string     `yaml:"cron"` // with seconds field
	Jobs []WatchJob `yaml:"jobs"`
}

// WatchJob is one exchange/symbol re-evaluated on every tick
type WatchJob struct {
	Exchange     string `yaml:"exchange"`
	Symbol       string `yaml:"symbol"`
	LookbackDays int    `yaml:"lookback_days"`
	HorizonDays  int    `yaml:"horizon_days"` // calendar days past today
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:   "https://query1.finance.yahoo.com",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timeout:   30 * time.Second,
			RateLimit: 30,
			Fallback:  true,
		},
		Forecast: ForecastConfig{
			MaxHorizon:   365,
			RecentWindow: 5,
			TailRows:     5,
		},
		Markets: DefaultMarkets(),
		Server: ServerConfig{
			Listen:         ":8080",
			RequestTimeout: 60 * time.Second,
		},
		Watch: WatchConfig{
			Cron: "0 0 18 * * 1-5",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Override with environment variables if set
	if v := os.Getenv("STOCKCAST_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	} else if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.Provider.Proxy == "" {
		cfg.Provider.Proxy = v
	}
	if v := os.Getenv("STOCKCAST_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("STOCKCAST_HOME_MARKET"); v != "" {
		cfg.Markets.Home = strings.ToUpper(v)
	}
	if v := os.Getenv("STOCKCAST_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.RateLimit < 1 {
		return fmt.Errorf("provider.rate_limit must be at least 1")
	}
	if c.Forecast.MaxHorizon < 1 {
		return fmt.Errorf("forecast.max_horizon must be at least 1")
	}
	if c.Forecast.RecentWindow < 1 {
		return fmt.Errorf("forecast.recent_window must be at least 1")
	}
	if len(c.Markets.List) == 0 {
		return fmt.Errorf("markets.list must name at least one market")
	}

	seen := make(map[string]bool, len(c.Markets.List))
	for _, m := range c.Markets.List {
		code := strings.ToUpper(m.Code)
		if code == "" {
			return fmt.Errorf("market code is required")
		}
		if seen[code] {
			return fmt.Errorf("duplicate market %s", code)
		}
		seen[code] = true
		if len(m.Symbols) == 0 {
			return fmt.Errorf("market %s has no symbols", code)
		}
	}
	if c.Markets.Home != "" && !seen[strings.ToUpper(c.Markets.Home)] {
		return fmt.Errorf("markets.home %s is not a configured market", c.Markets.Home)
	}

	for i, job := range c.Watch.Jobs {
		if job.Exchange == "" || job.Symbol == "" {
			return fmt.Errorf("watch.jobs[%d]: exchange and symbol are required", i)
		}
	}
	return nil
}

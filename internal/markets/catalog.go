// Package markets holds the exchange catalog: which exchanges can be
// selected, which symbols each offers, and how a symbol maps to the
// provider's ticker.
package markets

import (
	"errors"
	"fmt"
	"strings"

	"stockcast/internal/config"
	"stockcast/pkg/model"
)

var (
	// ErrUnknownExchange is returned for an exchange not in the catalog
	ErrUnknownExchange = errors.New("unknown exchange")
	// ErrUnknownSymbol is returned for a symbol outside the exchange's list
	ErrUnknownSymbol = errors.New("symbol not listed for exchange")
)

// Market is one selectable exchange
type Market struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Suffix  string   `json:"suffix,omitempty"`
	Home    bool     `json:"home"`
	Symbols []string `json:"symbols"`
}

// Ticker builds the provider identifier for symbol on this market
func (m *Market) Ticker(symbol string) string {
	if m.Home {
		return symbol
	}
	return symbol + m.Suffix
}

// Catalog is the loaded exchange -> symbols table
type Catalog struct {
	markets map[string]*Market
	order   []string
}

// NewCatalog builds a catalog from configuration. Codes are upper-cased and
// repeated symbols within a market are dropped.
func NewCatalog(cfg config.MarketsConfig) *Catalog {
	c := &Catalog{markets: make(map[string]*Market, len(cfg.List))}
	home := strings.ToUpper(cfg.Home)

	for _, mc := range cfg.List {
		code := strings.ToUpper(strings.TrimSpace(mc.Code))
		if code == "" {
			continue
		}
		m := &Market{
			Code:    code,
			Name:    mc.Name,
			Suffix:  mc.Suffix,
			Home:    code == home,
			Symbols: dedupe(mc.Symbols),
		}
		if m.Name == "" {
			m.Name = code
		}
		if _, exists := c.markets[code]; !exists {
			c.order = append(c.order, code)
		}
		c.markets[code] = m
	}
	return c
}

// Markets returns all markets in configuration order
func (c *Catalog) Markets() []Market {
	out := make([]Market, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, *c.markets[code])
	}
	return out
}

// Codes returns the market codes in configuration order
func (c *Catalog) Codes() []string {
	return append([]string(nil), c.order...)
}

// Market looks up an exchange by code (case-insensitive)
func (c *Catalog) Market(exchange string) (*Market, error) {
	m, ok := c.markets[strings.ToUpper(strings.TrimSpace(exchange))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, exchange)
	}
	return m, nil
}

// Symbols returns the candidate list for an exchange
func (c *Catalog) Symbols(exchange string) ([]string, error) {
	m, err := c.Market(exchange)
	if err != nil {
		return nil, err
	}
	return m.Symbols, nil
}

// Resolve validates an exchange/symbol selection and returns the stock with
// its provider ticker.
func (c *Catalog) Resolve(exchange, symbol string) (model.Stock, error) {
	m, err := c.Market(exchange)
	if err != nil {
		return model.Stock{}, err
	}

	want := strings.ToUpper(strings.TrimSpace(symbol))
	for _, s := range m.Symbols {
		if strings.ToUpper(s) == want {
			return model.Stock{
				Symbol:   s,
				Ticker:   m.Ticker(s),
				Exchange: m.Code,
			}, nil
		}
	}
	return model.Stock{}, fmt.Errorf("%w: %s on %s", ErrUnknownSymbol, symbol, m.Code)
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToUpper(s)] {
			continue
		}
		seen[strings.ToUpper(s)] = true
		out = append(out, s)
	}
	return out
}

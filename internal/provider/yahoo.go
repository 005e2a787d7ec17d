package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"stockcast/internal/calendar"
	"stockcast/internal/config"
	"stockcast/internal/ratelimit"
	"stockcast/pkg/model"
)

const chartPath = "/v8/finance/chart/{ticker}"

// YahooProvider implements Provider on the Yahoo Finance v8 chart endpoint
type YahooProvider struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

// NewYahooProvider creates a new Yahoo Finance provider
func NewYahooProvider(cfg config.ProviderConfig) *YahooProvider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}

	return &YahooProvider{
		client:  client,
		limiter: ratelimit.NewLimiter("yahoo", cfg.RateLimit),
	}
}

// Name returns the provider name
func (p *YahooProvider) Name() string {
	return "yahoo"
}

// IsAvailable always returns true (no API key needed)
func (p *YahooProvider) IsAvailable() bool {
	return true
}

// yahooResponse represents the Yahoo Finance chart response.
// Quote values are pointers because Yahoo sends null for missing bars.
type yahooResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				GMTOffset            int    `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetDailyBars fetches daily bars for the inclusive window [start, end]
func (p *YahooProvider) GetDailyBars(ctx context.Context, ticker string, start, end time.Time) ([]model.Bar, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// period2 is exclusive on Yahoo's side
	period1 := calendar.Day(start).Unix()
	period2 := calendar.Day(end).AddDate(0, 0, 1).Unix()

	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"period1":        strconv.FormatInt(period1, 10),
			"period2":        strconv.FormatInt(period2, 10),
			"interval":       "1d",
			"events":         "history",
			"includePrePost": "false",
		}).
		Get(chartPath)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: err, Retryable: true}
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests:
		p.limiter.SignalRateLimited()
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("rate limited"), Retryable: true}
	case code >= http.StatusInternalServerError:
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("status %d", code), Retryable: true}
	case code != http.StatusOK && code != http.StatusNotFound:
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("status %d", code), Retryable: false}
	}

	p.limiter.ResetBackoff()

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNoData
	}

	var data yahooResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("decoding response: %w", err), Retryable: false}
	}

	if data.Chart.Error != nil {
		if data.Chart.Error.Code == "Not Found" {
			return nil, ErrNoData
		}
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%s", data.Chart.Error.Description), Retryable: false}
	}
	if len(data.Chart.Result) == 0 || len(data.Chart.Result[0].Timestamp) == 0 || len(data.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := data.Chart.Result[0]
	quotes := result.Indicators.Quote[0]
	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)

	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Skip bars with any missing price (holidays, halted sessions)
		if i >= len(quotes.Open) || i >= len(quotes.High) || i >= len(quotes.Low) || i >= len(quotes.Close) {
			continue
		}
		if quotes.Open[i] == nil || quotes.High[i] == nil || quotes.Low[i] == nil || quotes.Close[i] == nil {
			continue
		}

		var volume int64
		if i < len(quotes.Volume) && quotes.Volume[i] != nil {
			volume = *quotes.Volume[i]
		}

		bars = append(bars, model.Bar{
			Date:   calendar.Day(time.Unix(ts, 0).In(loc)),
			Open:   *quotes.Open[i],
			High:   *quotes.High[i],
			Low:    *quotes.Low[i],
			Close:  *quotes.Close[i],
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, ErrNoData
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars, nil
}

// exchangeLocation resolves the exchange time zone so bar timestamps map to
// the exchange's trading date.
func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("exchange", gmtOffset)
}

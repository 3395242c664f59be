package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const (
	DefaultAlphaVantageBaseURL = "https://www.alphavantage.co"
	DefaultSymbolSuffix        = ".LON"
	DefaultCurrency            = "USD"

	globalQuotePricePath = `$["Global Quote"]["05. price"]`
	maxResponseBytes     = 1 << 20
)

// AlphaVantageConfig configures the Alpha Vantage GLOBAL_QUOTE adapter.
type AlphaVantageConfig struct {
	APIKey       string
	BaseURL      string
	SymbolSuffix string
	// Currency is reported on every quote. The endpoint does not say which
	// currency it prices in.
	Currency string
}

// AlphaVantageFetcher implements Fetcher against the Alpha Vantage
// GLOBAL_QUOTE endpoint.
type AlphaVantageFetcher struct {
	cfg    AlphaVantageConfig
	client *http.Client
}

// NewAlphaVantageFetcher creates a fetcher. A nil client uses a plain
// http.Client; per-call deadlines come from the context.
func NewAlphaVantageFetcher(cfg AlphaVantageConfig, client *http.Client) *AlphaVantageFetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAlphaVantageBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.SymbolSuffix == "" {
		cfg.SymbolSuffix = DefaultSymbolSuffix
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if client == nil {
		client = &http.Client{}
	}
	return &AlphaVantageFetcher{cfg: cfg, client: client}
}

// FetchQuote implements Fetcher.
func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, ticker string) (Quote, bool, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", ticker+f.cfg.SymbolSuffix)
	params.Set("apikey", f.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return Quote{}, false, &ProviderError{Ticker: ticker, Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Quote{}, false, &ProviderError{Ticker: ticker, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Quote{}, false, &ProviderError{
			Ticker: ticker,
			Op:     "request",
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return Quote{}, false, &ProviderError{Ticker: ticker, Op: "decode", Err: err}
	}

	// Quota notices arrive as 200 responses with a single message field.
	for _, key := range []string{"Note", "Information"} {
		if msg, ok := payload[key].(string); ok {
			return Quote{}, false, &ProviderError{Ticker: ticker, Op: "request", Err: fmt.Errorf("%w: %s", ErrThrottled, msg)}
		}
	}
	if _, ok := payload["Error Message"]; ok {
		return Quote{}, false, nil
	}

	raw, err := jsonpath.Get(globalQuotePricePath, payload)
	if err != nil {
		// Unknown symbols come back as an empty "Global Quote" object.
		return Quote{}, false, nil
	}

	price, ok, err := parsePrice(raw)
	if err != nil {
		return Quote{}, false, &ProviderError{Ticker: ticker, Op: "parse price", Err: err}
	}
	if !ok {
		return Quote{}, false, nil
	}

	return Quote{
		Ticker:    ticker,
		Price:     price,
		Currency:  f.cfg.Currency,
		FetchedAt: time.Now(),
	}, true, nil
}

func parsePrice(raw interface{}) (decimal.Decimal, bool, error) {
	if list, ok := raw.([]interface{}); ok {
		if len(list) == 0 {
			return decimal.Zero, false, nil
		}
		raw = list[0]
	}

	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, false, nil
		}
		price, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, false, err
		}
		return price, true, nil
	case float64:
		return decimal.NewFromFloat(v), true, nil
	default:
		return decimal.Zero, false, errors.New("unexpected price type")
	}
}

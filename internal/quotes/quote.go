// Package quotes prices stock tickers through a third-party market data
// provider. Prices are cached per ticker for a fixed TTL and every outbound
// provider call goes through a single FIFO queue so the whole process stays
// inside the provider's global request quota.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the last known price of a ticker.
type Quote struct {
	Ticker    string          `json:"ticker"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	FetchedAt time.Time       `json:"timestamp"`
}

// Fetcher retrieves the current price of one ticker from a provider.
//
// A provider that answers but has no data for the ticker reports found ==
// false with a nil error. Errors are reserved for transport and protocol
// failures.
type Fetcher interface {
	FetchQuote(ctx context.Context, ticker string) (quote Quote, found bool, err error)
}

// Clock abstracts wall-clock reads and timers for the quote service.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the real clock.
func SystemClock() Clock { return systemClock{} }

var (
	// ErrClosed is returned to callers once the service has been shut down.
	ErrClosed = errors.New("quote service closed")

	// ErrInvalidTicker is returned for blank ticker symbols.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrThrottled marks a provider response that refused the call because
	// of its request quota.
	ErrThrottled = errors.New("provider throttled request")
)

// ProviderError is a transport or protocol failure talking to the provider.
type ProviderError struct {
	Ticker string
	Op     string
	Err    error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("quote provider %s for %s: %v", e.Op, e.Ticker, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error { return e.Err }

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/JimJafar/pension-tracker/internal/errors"
	"github.com/JimJafar/pension-tracker/internal/quotes"
	"github.com/JimJafar/pension-tracker/internal/validator"
)

// MaxTickersPerRequest caps a batch price lookup.
const MaxTickersPerRequest = 10

// stockService exposes the shared quote service to the HTTP layer.
type stockService struct {
	prices PriceSource
}

// NewStockService creates a new StockServicer backed by the process-wide
// quote service.
func NewStockService(prices PriceSource) StockServicer {
	return &stockService{prices: prices}
}

// GetQuote returns the current price of one ticker.
func (s *stockService) GetQuote(ctx context.Context, ticker string) (*quotes.Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !validator.ValidTicker(ticker) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid ticker format")
	}

	q, err := s.prices.GetPrice(ctx, ticker)
	if err != nil {
		return nil, mapQuoteError(err)
	}
	if q == nil {
		return nil, apperrors.ErrQuoteNotFound
	}
	return q, nil
}

// GetPrices returns one entry per requested ticker; tickers without a price
// map to nil.
func (s *stockService) GetPrices(ctx context.Context, tickers []string) (map[string]*quotes.Quote, error) {
	if len(tickers) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one ticker is required")
	}
	if len(tickers) > MaxTickersPerRequest {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("maximum %d tickers per request", MaxTickersPerRequest))
	}

	normalized := make([]string, len(tickers))
	for i, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if !validator.ValidTicker(t) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid ticker format: "+t)
		}
		normalized[i] = t
	}

	return s.prices.GetPrices(ctx, normalized), nil
}

// CacheStats reports the quote cache counters.
func (s *stockService) CacheStats() quotes.Stats {
	return s.prices.Stats()
}

// mapQuoteError converts quote service failures into application errors.
func mapQuoteError(err error) error {
	var perr *quotes.ProviderError
	switch {
	case errors.As(err, &perr):
		return apperrors.Wrap(apperrors.ErrQuoteProvider, err)
	case errors.Is(err, quotes.ErrClosed):
		return apperrors.Wrap(apperrors.ErrQuoteServiceClosed, err)
	case errors.Is(err, quotes.ErrInvalidTicker):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid ticker format")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.ErrQuoteTimeout, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

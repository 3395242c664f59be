package quotes

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/JimJafar/pension-tracker/internal/logger"
)

const (
	// DefaultTTL is how long a fetched price is served from cache.
	DefaultTTL = 15 * time.Minute

	// DefaultRequestInterval spaces provider calls to stay at five per minute.
	DefaultRequestInterval = 12 * time.Second

	// DefaultFetchTimeout bounds a single provider call so a hung request
	// cannot stall the queue forever.
	DefaultFetchTimeout = 30 * time.Second

	defaultQueueSize = 64
)

// Config controls a Service. Zero values fall back to the defaults above.
type Config struct {
	TTL             time.Duration
	RequestInterval time.Duration
	FetchTimeout    time.Duration
	QueueSize       int
	Clock           Clock
	Logger          *zap.SugaredLogger
}

// Stats is a snapshot of cache and queue counters.
type Stats struct {
	Entries  int   `json:"entries"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Fetches  int64 `json:"fetches"`
	Failures int64 `json:"failures"`
}

type fetchResult struct {
	quote *Quote
	err   error
}

type fetchRequest struct {
	ticker string
	reply  chan fetchResult
}

// Service is the process-wide price cache in front of a Fetcher. Build one at
// startup and share it; all provider traffic is serialized through its single
// worker, which waits RequestInterval after every call (successful or not)
// before starting the next one.
type Service struct {
	fetcher      Fetcher
	clock        Clock
	log          *zap.SugaredLogger
	ttl          time.Duration
	interval     time.Duration
	fetchTimeout time.Duration

	mu    sync.RWMutex
	cache map[string]Quote

	requests  chan *fetchRequest
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	hits     atomic.Int64
	misses   atomic.Int64
	fetches  atomic.Int64
	failures atomic.Int64
}

// NewService starts a Service backed by fetcher. Call Close to stop it.
func NewService(fetcher Fetcher, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.RequestInterval < 0 {
		cfg.RequestInterval = 0
	} else if cfg.RequestInterval == 0 {
		cfg.RequestInterval = DefaultRequestInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Named("quotes")
	}

	s := &Service{
		fetcher:      fetcher,
		clock:        cfg.Clock,
		log:          cfg.Logger,
		ttl:          cfg.TTL,
		interval:     cfg.RequestInterval,
		fetchTimeout: cfg.FetchTimeout,
		cache:        make(map[string]Quote),
		requests:     make(chan *fetchRequest, cfg.QueueSize),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	go s.run()
	return s
}

// GetPrice returns the price of ticker, or nil when the provider has no data
// for it. Fresh cache entries are returned without queueing. On a miss the
// call waits for its turn in the provider queue; ctx only bounds that wait; a
// queued fetch always runs to completion.
func (s *Service) GetPrice(ctx context.Context, ticker string) (*Quote, error) {
	ticker = normalize(ticker)
	if ticker == "" {
		return nil, ErrInvalidTicker
	}

	if q, ok := s.cached(ticker); ok {
		s.hits.Add(1)
		return q, nil
	}
	s.misses.Add(1)

	req := &fetchRequest{ticker: ticker, reply: make(chan fetchResult, 1)}
	select {
	case s.requests <- req:
	case <-s.quit:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.quote, res.err
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetPrices prices each ticker in turn, never in parallel. The result has one
// entry per input ticker; absent prices and failed fetches are nil. A failure
// for one ticker is logged and does not stop the batch.
func (s *Service) GetPrices(ctx context.Context, tickers []string) map[string]*Quote {
	prices := make(map[string]*Quote, len(tickers))
	for _, ticker := range tickers {
		q, err := s.GetPrice(ctx, ticker)
		if err != nil {
			s.log.Warnw("price unavailable", "ticker", ticker, "error", err)
		}
		prices[ticker] = q
	}
	return prices
}

// ClearStaleCache drops entries older than the TTL and returns how many were
// removed. Staleness is re-checked on every read, so this only reclaims memory.
func (s *Service) ClearStaleCache() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for ticker, q := range s.cache {
		if now.Sub(q.FetchedAt) >= s.ttl {
			delete(s.cache, ticker)
			removed++
		}
	}
	return removed
}

// Stats returns the current counters.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	entries := len(s.cache)
	s.mu.RUnlock()

	return Stats{
		Entries:  entries,
		Hits:     s.hits.Load(),
		Misses:   s.misses.Load(),
		Fetches:  s.fetches.Load(),
		Failures: s.failures.Load(),
	}
}

// Close stops the worker. Callers still waiting receive ErrClosed.
func (s *Service) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

func (s *Service) cached(ticker string) (*Quote, bool) {
	s.mu.RLock()
	q, ok := s.cache[ticker]
	s.mu.RUnlock()

	if !ok || s.clock.Now().Sub(q.FetchedAt) >= s.ttl {
		return nil, false
	}
	return &q, true
}

// run is the single consumer of the request queue.
func (s *Service) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case req := <-s.requests:
			req.reply <- s.fetch(req.ticker)

			select {
			case <-s.clock.After(s.interval):
			case <-s.quit:
				return
			}
		}
	}
}

func (s *Service) fetch(ticker string) fetchResult {
	s.fetches.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	q, found, err := s.fetcher.FetchQuote(ctx, ticker)
	if err != nil {
		s.failures.Add(1)
		s.log.Errorw("quote fetch failed", "ticker", ticker, "error", err)
		return fetchResult{err: err}
	}
	if !found {
		s.log.Warnw("no price data for ticker", "ticker", ticker)
		return fetchResult{}
	}

	q.Ticker = ticker
	q.FetchedAt = s.clock.Now()

	s.mu.Lock()
	s.cache[ticker] = q
	s.mu.Unlock()

	s.log.Debugw("quote cached", "ticker", ticker, "price", q.Price.String())
	return fetchResult{quote: &q}
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

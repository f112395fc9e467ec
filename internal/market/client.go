// Package market is the request layer in front of the market-data providers.
// It resolves logical resources through a TTL/LRU cache, fetches misses over
// HTTP with a per-attempt deadline, retries transient network failures with
// exponential backoff, and normalizes provider payloads into the canonical
// model types.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TrendBot/internal/cache"
)

const (
	// DefaultTimeout is the wall-clock deadline for one attempt.
	DefaultTimeout = 15 * time.Second
	// DefaultMaxRetries bounds retries after the initial attempt.
	DefaultMaxRetries = 3
	// DefaultBaseDelay is the backoff unit; attempt n waits baseDelay * 2^n.
	DefaultBaseDelay = time.Second
)

// Request describes one logical fetch. A non-empty CacheKey makes the call
// cache-first and caches the normalized result on success.
type Request struct {
	Target   string
	CacheKey string
	TTL      time.Duration
	Parse    func([]byte) (any, error)
}

// Response is the envelope every successful request resolves to. Data holds
// the normalized value when the request carried a parser, raw JSON otherwise.
type Response struct {
	Success   bool  `json:"success"`
	Data      any   `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// Config carries the tunables for a Client. Zero fields fall back to defaults.
type Config struct {
	BaseURL      string
	FearGreedURL string
	Timeout      time.Duration
	MaxRetries   int
	BaseDelay    time.Duration
}

// Client fetches market data with caching, deduplication, timeout, and retry.
type Client struct {
	http         *http.Client
	cache        *cache.Cache
	log          zerolog.Logger
	baseURL      string
	fearGreedURL string
	timeout      time.Duration
	maxRetries   int
	baseDelay    time.Duration

	sleep func(time.Duration) // overridable for tests

	inflight inflightBatches
}

// NewClient creates a client backed by the given cache. A nil cache disables
// caching entirely.
func NewClient(cfg Config, store *cache.Cache) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.FearGreedURL == "" {
		cfg.FearGreedURL = DefaultFearGreedURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	return &Client{
		http:         &http.Client{},
		cache:        store,
		log:          log.With().Str("component", "market").Logger(),
		baseURL:      cfg.BaseURL,
		fearGreedURL: cfg.FearGreedURL,
		timeout:      cfg.Timeout,
		maxRetries:   cfg.MaxRetries,
		baseDelay:    cfg.BaseDelay,
		sleep:        time.Sleep,
		inflight:     newInflightBatches(),
	}
}

// Do resolves one request: cache first, then the network with retries.
// Only network errors are retried; timeouts and parse failures are terminal.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.cache != nil && req.CacheKey != "" {
		if v, ok := c.cache.Get(req.CacheKey); ok {
			return v.(*Response), nil
		}
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := c.fetch(ctx, req)
		if err == nil {
			if c.cache != nil && req.CacheKey != "" {
				c.cache.SetTTL(req.CacheKey, resp, req.TTL)
			}
			return resp, nil
		}

		lastErr = err
		if !retryable(err) || attempt >= c.maxRetries {
			break
		}
		delay := c.baseDelay << attempt
		c.log.Warn().
			Str("target", req.Target).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Err(err).
			Msg("request failed, retrying")
		c.sleep(delay)
	}
	return nil, lastErr
}

// fetch performs a single attempt under the per-attempt deadline.
func (c *Client) fetch(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.Target, nil)
	if err != nil {
		return nil, &ParseError{URL: req.Target, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &TimeoutError{URL: req.Target}
		}
		return nil, &NetworkError{URL: req.Target, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{URL: req.Target}
		}
		return nil, &NetworkError{URL: req.Target, Err: err}
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &NetworkError{URL: req.Target, Status: httpResp.StatusCode}
	}

	data, err := parse(req, body)
	if err != nil {
		return nil, err
	}
	return &Response{Success: true, Data: data, Timestamp: time.Now().Unix()}, nil
}

func parse(req Request, body []byte) (any, error) {
	if req.Parse != nil {
		data, err := req.Parse(body)
		if err != nil {
			return nil, &ParseError{URL: req.Target, Err: err}
		}
		return data, nil
	}
	if !json.Valid(body) {
		return nil, &ParseError{URL: req.Target, Err: errors.New("invalid JSON payload")}
	}
	return json.RawMessage(body), nil
}

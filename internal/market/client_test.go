package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendBot/internal/cache"
)

// newTestClient points a client at srv and replaces real sleeping with a
// recorder so backoff is observable without slowing the test down.
func newTestClient(srv *httptest.Server, store *cache.Cache) (*Client, *[]time.Duration) {
	c := NewClient(Config{
		BaseURL:      srv.URL,
		FearGreedURL: srv.URL + "/fng/",
		Timeout:      2 * time.Second,
	}, store)

	var mu sync.Mutex
	delays := &[]time.Duration{}
	c.sleep = func(d time.Duration) {
		mu.Lock()
		*delays = append(*delays, d)
		mu.Unlock()
	}
	return c, delays
}

func TestDoCacheFirst(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, cache.New(10, time.Minute))
	req := Request{Target: srv.URL + "/resource", CacheKey: "resource", TTL: time.Minute}

	first, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	second, err := c.Do(context.Background(), req)
	require.NoError(t, err)

	assert.Same(t, first, second, "cache hit returns the stored envelope")
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "no network call on a live cache entry")
	assert.True(t, first.Success)
	assert.Equal(t, json.RawMessage(`{"ok":true}`), first.Data)
}

func TestDoRetriesNetworkErrorsWithBackoff(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, delays := newTestClient(srv, nil)

	resp, err := c.Do(context.Background(), Request{Target: srv.URL + "/flaky"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
	assert.Equal(t, []time.Duration{DefaultBaseDelay, 2 * DefaultBaseDelay}, *delays)
}

func TestDoExhaustsRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, delays := newTestClient(srv, nil)

	_, err := c.Do(context.Background(), Request{Target: srv.URL + "/down"})
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusBadGateway, netErr.Status)
	assert.EqualValues(t, 1+DefaultMaxRetries, atomic.LoadInt32(&hits))
	assert.Len(t, *delays, DefaultMaxRetries)
}

func TestDoTimeoutIsTerminal(t *testing.T) {
	var hits int32
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, delays := newTestClient(srv, nil)
	c.timeout = 30 * time.Millisecond

	_, err := c.Do(context.Background(), Request{Target: srv.URL + "/slow"})
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "timeouts are not retried")
	assert.Empty(t, *delays)
}

func TestDoParseErrorIsTerminal(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, cache.New(10, time.Minute))
	req := Request{Target: srv.URL + "/bad", CacheKey: "bad", Parse: parseCoins}

	_, err := c.Do(context.Background(), req)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	_, ok := c.cache.Get("bad")
	assert.False(t, ok, "failures are never cached")
}

func TestBatchCoalescesConcurrentCalls(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, nil)
	reqs := []Request{{Target: srv.URL + "/a"}, {Target: srv.URL + "/b"}}
	reversed := []Request{reqs[1], reqs[0]}

	results := make(chan []Outcome, 2)
	go func() { results <- c.Batch(context.Background(), reqs) }()

	// Wait for the first batch to be in flight, then issue an identical one.
	require.Eventually(t, func() bool { return atomic.LoadInt32(&hits) == 2 }, time.Second, time.Millisecond)
	go func() { results <- c.Batch(context.Background(), reversed) }()
	time.Sleep(50 * time.Millisecond)
	close(release)

	first := <-results
	second := <-results
	assert.Equal(t, first, second, "concurrent identical batches share one result")
	assert.EqualValues(t, 2, atomic.LoadInt32(&hits), "each target fetched once")

	// A batch issued after settlement runs independently.
	c.Batch(context.Background(), reqs)
	assert.EqualValues(t, 4, atomic.LoadInt32(&hits))
}

func TestBatchPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, nil)
	outcomes := c.Batch(context.Background(), []Request{
		{Target: srv.URL + "/good"},
		{Target: srv.URL + "/bad"},
	})

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success)
	assert.NotNil(t, outcomes[0].Data)
	assert.False(t, outcomes[1].Success)
	assert.Error(t, outcomes[1].Err)
	assert.Equal(t, srv.URL+"/bad", outcomes[1].Target)
}

func TestPreloadWarmsCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch {
		case r.URL.Path == "/coins/markets":
			w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000}]`))
		case r.URL.Path == "/global":
			w.Write([]byte(`{"data":{"markets":800,"total_market_cap":{"usd":2e12}}}`))
		case r.URL.Path == "/search/trending":
			w.Write([]byte(`{"coins":[{"item":{"id":"solana","symbol":"sol"}}]}`))
		default:
			w.Write([]byte(`{"data":[{"value":"61","value_classification":"Greed"}]}`))
		}
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, cache.New(10, time.Minute))
	c.Warmup(context.Background())
	warmupHits := atomic.LoadInt32(&hits)
	assert.EqualValues(t, 4, warmupHits)

	coins, err := c.Trends(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, "BTC", coins[0].Symbol)
	assert.EqualValues(t, warmupHits, atomic.LoadInt32(&hits), "warmed resources are served from cache")
}

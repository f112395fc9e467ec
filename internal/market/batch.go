package market

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Outcome is one slot of a batch result. Slots line up positionally with the
// requests that produced them, and a failing slot never affects its siblings.
type Outcome struct {
	Target  string    `json:"target"`
	Success bool      `json:"success"`
	Data    *Response `json:"data,omitempty"`
	Err     error     `json:"-"`
}

// batchCall is one outstanding batch. Waiters share its outcomes once done
// is closed.
type batchCall struct {
	done     chan struct{}
	outcomes []Outcome
}

type inflightBatches struct {
	mu    sync.Mutex
	calls map[string]*batchCall
}

func newInflightBatches() inflightBatches {
	return inflightBatches{calls: make(map[string]*batchCall)}
}

// batchKey identifies a batch by its target set alone. Order does not matter;
// per-request cache keys and TTLs do not participate.
func batchKey(reqs []Request) string {
	targets := make([]string, len(reqs))
	for i, r := range reqs {
		targets[i] = r.Target
	}
	sort.Strings(targets)
	return strings.Join(targets, "\n")
}

// Batch resolves all requests concurrently and returns one outcome per
// request, in input order. Concurrent batches over the same target set
// coalesce onto a single execution; once that execution settles, the key is
// released and a later identical batch runs independently.
func (c *Client) Batch(ctx context.Context, reqs []Request) []Outcome {
	if len(reqs) == 0 {
		return nil
	}
	key := batchKey(reqs)

	c.inflight.mu.Lock()
	if call, ok := c.inflight.calls[key]; ok {
		c.inflight.mu.Unlock()
		<-call.done
		return call.outcomes
	}
	call := &batchCall{done: make(chan struct{})}
	c.inflight.calls[key] = call
	c.inflight.mu.Unlock()

	outcomes := make([]Outcome, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			resp, err := c.Do(ctx, req)
			if err != nil {
				outcomes[i] = Outcome{Target: req.Target, Err: err}
				return
			}
			outcomes[i] = Outcome{Target: req.Target, Success: true, Data: resp}
		}(i, req)
	}
	wg.Wait()

	call.outcomes = outcomes
	c.inflight.mu.Lock()
	delete(c.inflight.calls, key)
	c.inflight.mu.Unlock()
	close(call.done)

	return outcomes
}

// Preload fires all requests concurrently and waits for them to settle,
// warming the cache on a best effort basis. Individual failures are logged
// and discarded.
func (c *Client) Preload(ctx context.Context, reqs []Request) {
	for _, out := range c.Batch(ctx, reqs) {
		if out.Err != nil {
			c.log.Debug().Str("target", out.Target).Err(out.Err).Msg("preload request failed")
		}
	}
}

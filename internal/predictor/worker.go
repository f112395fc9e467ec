package predictor

import (
	"errors"
	"time"
)

// ErrCalcTimeout reports that the calc worker did not answer within the
// deadline. Callers recover by computing inline; the error never reaches the
// engine's own callers.
var ErrCalcTimeout = errors.New("calculation timed out")

// DefaultCalcTimeout bounds how long the engine waits for an offloaded
// computation before falling back to the synchronous path.
const DefaultCalcTimeout = 5 * time.Second

// CalcWorker runs heavy numeric computations on a dedicated goroutine so the
// engine's callers are not blocked by regression, correlation, or volatility
// math on large series. It is an optimization only: results are produced by
// the same functions the synchronous path uses.
type CalcWorker struct {
	tasks   chan func()
	quit    chan struct{}
	timeout time.Duration
}

// NewCalcWorker creates a stopped worker with the default timeout.
func NewCalcWorker() *CalcWorker {
	return &CalcWorker{
		tasks:   make(chan func()),
		quit:    make(chan struct{}),
		timeout: DefaultCalcTimeout,
	}
}

// Start launches the worker goroutine.
func (w *CalcWorker) Start() {
	go w.loop()
}

// Stop terminates the worker goroutine. Pending submissions fail with
// ErrCalcTimeout.
func (w *CalcWorker) Stop() {
	close(w.quit)
}

func (w *CalcWorker) loop() {
	for {
		select {
		case fn := <-w.tasks:
			fn()
		case <-w.quit:
			return
		}
	}
}

// runCalc executes fn on the worker goroutine and waits for its result. The
// reply channel is buffered so a late result after a timeout is dropped
// without blocking the worker or racing the caller's fallback.
func runCalc[T any](w *CalcWorker, fn func() T) (T, error) {
	var zero T
	reply := make(chan T, 1)
	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	select {
	case w.tasks <- func() { reply <- fn() }:
	case <-w.quit:
		return zero, ErrCalcTimeout
	case <-timer.C:
		return zero, ErrCalcTimeout
	}

	select {
	case v := <-reply:
		return v, nil
	case <-timer.C:
		return zero, ErrCalcTimeout
	}
}

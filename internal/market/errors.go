package market

import (
	"errors"
	"fmt"
)

// NetworkError covers transport failures and non-2xx responses. It is the only
// retryable error kind.
type NetworkError struct {
	URL    string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError reports that the per-attempt deadline elapsed. Timeouts are
// terminal; the client never retries them.
type TimeoutError struct {
	URL string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request %s: timed out", e.URL)
}

// ParseError reports a malformed or unexpected payload. Surfaced immediately,
// never retried.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// retryable reports whether a failed attempt is worth repeating.
func retryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// Package clients provides an instrumented HTTP client for upstream quote
// sources, with retries and a circuit breaker.
package clients

import (
	"errors"
	"fmt"
)

// Client errors are infrastructure failures. Adapters translate them into
// domain errors.
var (
	// ErrCircuitOpen is returned without calling the upstream while the
	// breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRetriesExhausted wraps the last failure once every attempt failed.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// StatusError is a non-2xx response that was not retried or was the last
// attempt.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
}

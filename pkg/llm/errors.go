package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the endpoint answers with no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// ConnectionError reports that the endpoint was unreachable, timed out or
// answered with an error. It is the retryable failure class.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("llm: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time.
func (e *ConnectionError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Message returns a user-facing explanation.
func (e *ConnectionError) Message() string {
	if e.Timeout() {
		return "The language model did not answer in time. Please try again in a moment."
	}
	return "The language model service is unavailable. Please check that it is running and try again."
}

// IsRetryable reports whether err may succeed when retried.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var cerr *ConnectionError
	return errors.As(err, &cerr)
}

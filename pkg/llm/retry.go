package llm

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds retries of retryable failures with exponential backoff.
// MaxAttempts counts the first call; 1 or less disables retrying.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is a single attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     1,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

type retryClient struct {
	next   Client
	policy RetryPolicy
	logger *slog.Logger
}

// WithRetry wraps c so that failures for which IsRetryable holds are retried
// according to policy. Other errors are returned immediately.
func WithRetry(c Client, policy RetryPolicy, logger *slog.Logger) Client {
	if policy.MaxAttempts <= 1 {
		return c
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &retryClient{next: c, policy: policy, logger: logger}
}

func (r *retryClient) Outline(ctx context.Context, req Request) (string, error) {
	b := backoff.NewExponentialBackOff()
	if r.policy.InitialInterval > 0 {
		b.InitialInterval = r.policy.InitialInterval
	}
	if r.policy.MaxInterval > 0 {
		b.MaxInterval = r.policy.MaxInterval
	}

	attempt := 0
	op := func() (string, error) {
		attempt++
		text, err := r.next.Outline(ctx, req)
		if err != nil && !IsRetryable(err) {
			return "", backoff.Permanent(err)
		}
		return text, err
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(r.policy.MaxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			r.logger.Warn("retrying LLM request", "attempt", attempt, "wait", wait, "error", err)
		}),
	)
}

package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker defines the interface for cross-process concurrency control.
// It lets artifact sweeps running on several replicas take turns on a shared output directory.
type Locker interface {
	// Lock attempts to acquire a lock for the given key (e.g., "sweep").
	// It blocks until the lock is acquired or the context is canceled.
	// The lock expires after ttl even if the holder never releases it.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

// NopLocker grants every lock immediately. It is the single-process default.
type NopLocker struct{}

// Lock implements Locker.
func (NopLocker) Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return func(context.Context) error { return nil }, nil
}

package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aretw0/deckgen/pkg/ports"
)

// ErrNotHeld is returned by an UnlockFunc called a second time.
var ErrNotHeld = errors.New("memory: lock not held")

// lockEntry holds the semaphore and the reference count of one key.
type lockEntry struct {
	sem  chan struct{}
	refs int
}

// Locker implements ports.Locker inside a single process.
// Entries are reference counted and removed when no caller holds or waits on them.
// The ttl argument is ignored: a process-local lock dies with its holder.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

var _ ports.Locker = (*Locker)(nil)

// NewLocker creates an in-process Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates the entry for key and increments its reference count.
func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry when it reaches zero.
func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// Lock blocks until key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	entry := l.acquire(key)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		err := ErrNotHeld
		once.Do(func() {
			<-entry.sem
			l.release(key)
			err = nil
		})
		return err
	}, nil
}

// Held returns the number of keys currently locked or awaited.
func (l *Locker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

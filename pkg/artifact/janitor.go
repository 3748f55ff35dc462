package artifact

import (
	"context"
	"time"
)

// DefaultSweepInterval is how often a Janitor sweeps when no interval is given.
const DefaultSweepInterval = 10 * time.Minute

// Janitor sweeps a Store on a fixed interval until its context ends.
type Janitor struct {
	store    *Store
	interval time.Duration
	onSweep  func(SweepResult, error)
}

// NewJanitor creates a Janitor. onSweep, if non-nil, observes every sweep outcome.
func NewJanitor(store *Store, interval time.Duration, onSweep func(SweepResult, error)) *Janitor {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Janitor{store: store, interval: interval, onSweep: onSweep}
}

// Run sweeps once immediately and then on every tick. It returns when ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		j.sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	res, err := j.store.Sweep(ctx)
	if err != nil && ctx.Err() == nil {
		j.store.logger.Error("artifact sweep failed", "err", err)
	}
	if j.onSweep != nil {
		j.onSweep(res, err)
	}
}

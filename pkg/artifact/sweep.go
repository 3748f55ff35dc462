package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	sweepLockKey = "artifact-sweep"
	sweepLockTTL = time.Minute
)

// SweepResult summarizes one sweep.
type SweepResult struct {
	Scanned int
	Removed []string
	Failed  int
}

// Sweep deletes artifacts that are older than the retention window or ranked
// beyond the newest-N limit. Individual delete failures are logged and counted.
func (s *Store) Sweep(ctx context.Context) (SweepResult, error) {
	unlock, err := s.locker.Lock(ctx, sweepLockKey, sweepLockTTL)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to acquire sweep lock: %w", err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release sweep lock (will expire via TTL)", "err", err)
		}
	}()

	artifacts, err := s.List(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	res := SweepResult{Scanned: len(artifacts)}
	now := s.now()

	for i, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		expired := s.retention > 0 && now.Sub(a.ModTime) > s.retention
		surplus := s.keep > 0 && i >= s.keep
		if !expired && !surplus {
			continue
		}

		err := os.Remove(filepath.Join(s.dir, a.Name))
		switch {
		case err == nil:
			res.Removed = append(res.Removed, a.Name)
			s.logger.Debug("artifact removed", "name", a.Name, "expired", expired, "surplus", surplus)
		case errors.Is(err, fs.ErrNotExist):
			// Another sweep got there first.
		default:
			res.Failed++
			s.logger.Warn("failed to remove artifact", "name", a.Name, "err", err)
		}
	}

	if len(res.Removed) > 0 || res.Failed > 0 {
		s.logger.Info("artifact sweep finished",
			"scanned", res.Scanned,
			"removed", len(res.Removed),
			"failed", res.Failed,
		)
	}
	return res, nil
}

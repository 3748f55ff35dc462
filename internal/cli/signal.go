package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalContext is canceled on SIGINT or SIGTERM and remembers which signal arrived.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu     sync.Mutex
	sigVal os.Signal
}

// NewSignalContext creates a SignalContext derived from parent.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return sc
}

// Signal returns the signal that canceled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// HandleExecutionError drops cancellation so an interrupted command exits cleanly.
func HandleExecutionError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

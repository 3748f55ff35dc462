package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/deckgen/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_Exclusive(t *testing.T) {
	l := memory.NewLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "sweep", time.Minute)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		unlock2, err := l.Lock(ctx, "sweep", time.Minute)
		if err == nil {
			close(acquired)
			_ = unlock2(ctx)
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock succeeded while the first was held")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, unlock(ctx))

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock was not granted after unlock")
	}

	assert.Eventually(t, func() bool { return l.Held() == 0 }, time.Second, 10*time.Millisecond)
}

func TestLocker_IndependentKeys(t *testing.T) {
	l := memory.NewLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "a", 0)
	require.NoError(t, err)
	unlockB, err := l.Lock(ctx, "b", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, l.Held())
	require.NoError(t, unlockA(ctx))
	require.NoError(t, unlockB(ctx))
	assert.Equal(t, 0, l.Held())
}

func TestLocker_ContextCanceled(t *testing.T) {
	l := memory.NewLocker()

	unlock, err := l.Lock(context.Background(), "sweep", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "sweep", 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Held(), "the waiter's reference is released")

	require.NoError(t, unlock(context.Background()))
}

func TestLocker_DoubleUnlock(t *testing.T) {
	l := memory.NewLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "sweep", 0)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
	assert.ErrorIs(t, unlock(ctx), memory.ErrNotHeld)
}

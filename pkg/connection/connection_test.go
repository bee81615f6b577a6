package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		b := NewBackoff()
		assert.Equal(t, InitialBackoff, b.Current())
		assert.Equal(t, 0, b.Attempts())
	})

	t.Run("grows and caps without jitter", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{
			Initial:    100 * time.Millisecond,
			Max:        300 * time.Millisecond,
			Multiplier: 2,
		})
		want := []time.Duration{100, 200, 300, 300}
		for i, w := range want {
			assert.Equal(t, w*time.Millisecond, b.Next(), "attempt %d", i)
		}
		assert.Equal(t, 4, b.Attempts())

		b.Reset()
		assert.Equal(t, 100*time.Millisecond, b.Current())
		assert.Equal(t, 0, b.Attempts())
	})

	t.Run("jitter stays in range", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: time.Second, Jitter: 0.1})
		for i := 0; i < 50; i++ {
			b.Reset()
			d := b.Next()
			assert.GreaterOrEqual(t, d, time.Second)
			assert.LessOrEqual(t, d, 1100*time.Millisecond)
		}
	})

	t.Run("invalid config falls back", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{Initial: -1, Max: -1, Multiplier: 0.5, Jitter: -1})
		assert.Equal(t, InitialBackoff, b.Next())
		assert.Equal(t, time.Duration(float64(InitialBackoff)*BackoffMultiplier), b.Current())
	})
}

func fastConfig(attempts int) BackoffConfig {
	return BackoffConfig{Initial: time.Millisecond, Max: 2 * time.Millisecond, MaxAttempts: attempts}
}

func TestPoll(t *testing.T) {
	t.Run("stops when done", func(t *testing.T) {
		calls := 0
		err := Poll(context.Background(), fastConfig(0), func(context.Context) (bool, error) {
			calls++
			return calls == 3, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on error", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := Poll(context.Background(), fastConfig(0), func(context.Context) (bool, error) {
			calls++
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("attempt limit", func(t *testing.T) {
		calls := 0
		err := Poll(context.Background(), fastConfig(4), func(context.Context) (bool, error) {
			calls++
			return false, nil
		})
		assert.ErrorIs(t, err, ErrAttemptsExhausted)
		assert.Equal(t, 4, calls)
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		err := Poll(ctx, BackoffConfig{Initial: time.Hour}, func(context.Context) (bool, error) {
			cancel()
			return false, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetry(t *testing.T) {
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), fastConfig(5), func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("wraps last error", func(t *testing.T) {
		last := errors.New("link refused")
		err := Retry(context.Background(), fastConfig(2), func(context.Context) error { return last })
		assert.ErrorIs(t, err, ErrAttemptsExhausted)
		assert.ErrorIs(t, err, last)
	})

	t.Run("context cancelled keeps cause", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		last := errors.New("link refused")
		err := Retry(ctx, BackoffConfig{Initial: time.Hour}, func(context.Context) error {
			cancel()
			return last
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, last)
	})
}

package connection

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted indicates Poll or Retry ran out of attempts.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

// CheckFunc is one poll attempt. It returns done=true to stop polling.
// A non-nil error stops polling immediately.
type CheckFunc func(ctx context.Context) (done bool, err error)

// Poll calls check until it reports done, it fails, ctx ends or
// cfg.MaxAttempts is reached. Attempts are spaced by cfg's backoff.
func Poll(ctx context.Context, cfg BackoffConfig, check CheckFunc) error {
	b := NewBackoffWithConfig(cfg)
	for attempt := 1; ; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if cfg.MaxAttempts > 0 && attempt >= cfg.MaxAttempts {
			return fmt.Errorf("%w after %d polls", ErrAttemptsExhausted, attempt)
		}
		if err := sleep(ctx, b.Next()); err != nil {
			return err
		}
	}
}

// Retry calls fn until it succeeds, ctx ends or cfg.MaxAttempts is
// reached. The last error is wrapped in the result.
func Retry(ctx context.Context, cfg BackoffConfig, fn func(ctx context.Context) error) error {
	b := NewBackoffWithConfig(cfg)
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if cfg.MaxAttempts > 0 && attempt >= cfg.MaxAttempts {
			return fmt.Errorf("%w after %d tries: %w", ErrAttemptsExhausted, attempt, err)
		}
		if serr := sleep(ctx, b.Next()); serr != nil {
			return fmt.Errorf("%w (last error: %w)", serr, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

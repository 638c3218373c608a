// Package retry provides fixed-interval polling for remote state that settles over time.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDeadlineExceeded is returned by Poll when the configured deadline passes
// before the condition reports done.
var ErrDeadlineExceeded = errors.New("poll deadline exceeded")

// ErrMaxAttempts is returned by Poll when the attempt cap is reached.
var ErrMaxAttempts = errors.New("poll attempts exhausted")

// Config holds polling configuration.
type Config struct {
	Interval    time.Duration
	Deadline    time.Time // zero means no deadline
	MaxAttempts int       // 0 means unbounded
	Now         func() time.Time
}

// Option is a functional option for polling configuration.
type Option func(*Config)

// ConditionFunc reports whether polling is done. A non-nil error stops
// polling immediately and is returned to the caller unchanged.
type ConditionFunc func(ctx context.Context) (done bool, err error)

// Poll calls condition until it reports done, returns an error, the deadline
// passes, the attempt cap is reached, or ctx is cancelled. The deadline is
// checked before every attempt, so a deadline in the past never calls condition.
// Attempts are spaced by a fixed interval.
func Poll(ctx context.Context, condition ConditionFunc, opts ...Option) error {
	cfg := &Config{
		Interval: 2 * time.Second,
		Now:      time.Now,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	for attempt := 0; cfg.MaxAttempts == 0 || attempt < cfg.MaxAttempts; attempt++ {
		if !cfg.Deadline.IsZero() && !cfg.Now().Before(cfg.Deadline) {
			return ErrDeadlineExceeded
		}

		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(cfg.Interval):
			}
		}

		done, err := condition(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	return ErrMaxAttempts
}

// WithInterval sets the delay between attempts.
func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithDeadline sets the wall-clock instant after which polling gives up.
func WithDeadline(t time.Time) Option {
	return func(c *Config) {
		c.Deadline = t
	}
}

// WithMaxAttempts caps the number of condition calls.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithClock replaces the clock used for deadline checks.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// Package retry provides a bounded retry loop for outbound supplier calls.
package retry

import (
	"context"
	"errors"
	"time"
)

// Config holds the retry configuration options.
type Config struct {
	// MaxAttempts is the maximum number of attempts, including the first one.
	MaxAttempts int

	// Delay is the constant pause between attempts.
	Delay time.Duration

	// RetryIf decides whether an error is retryable.
	// If nil, every non-permanent error is retried.
	RetryIf func(error) bool

	// OnRetry is called before sleeping ahead of attempt number next.
	OnRetry func(next int, err error)
}

// Fixed returns a config that retries up to retries times with a constant delay.
func Fixed(retries int, delay time.Duration) Config {
	if retries < 0 {
		retries = 0
	}
	return Config{
		MaxAttempts: retries + 1,
		Delay:       delay,
		RetryIf:     SkipPermanent,
	}
}

// DoWithResult runs fn until it succeeds, returns a non-retryable error, or
// runs out of attempts. The last result is returned alongside the last error.
func DoWithResult[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = SkipPermanent
	}

	var result T
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !cfg.RetryIf(lastErr) || attempt == cfg.MaxAttempts {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, lastErr)
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}

	return result, unwrapPermanent(lastErr)
}

// Permanent wraps an error to indicate it should not be retried.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string {
	if p.Err == nil {
		return "permanent error"
	}
	return p.Err.Error()
}

func (p *Permanent) Unwrap() error {
	return p.Err
}

// NewPermanent creates a permanent (non-retryable) error.
func NewPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent checks if an error is permanent (non-retryable).
func IsPermanent(err error) bool {
	var permanent *Permanent
	return errors.As(err, &permanent)
}

// SkipPermanent is a RetryIf predicate that skips permanent errors.
func SkipPermanent(err error) bool {
	return !IsPermanent(err)
}

// unwrapPermanent strips the Permanent marker so callers see the real error.
func unwrapPermanent(err error) error {
	var permanent *Permanent
	if errors.As(err, &permanent) && permanent.Err != nil && err == error(permanent) {
		return permanent.Err
	}
	return err
}

// WithOnRetry returns a new config with the given retry hook.
func (c Config) WithOnRetry(fn func(next int, err error)) Config {
	c.OnRetry = fn
	return c
}

// WithMaxAttempts returns a new config with the given max attempts.
func (c Config) WithMaxAttempts(n int) Config {
	c.MaxAttempts = n
	return c
}

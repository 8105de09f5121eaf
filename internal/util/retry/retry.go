package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type policy struct {
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	retryIf      func(error) bool
	onRetry      func(attempt int, delay time.Duration, err error)
}

// Option tunes the retry policy.
type Option func(*policy)

// WithMaxRetries sets how many retries follow the first attempt.
func WithMaxRetries(n int) Option { return func(p *policy) { p.maxRetries = n } }

// WithInitialDelay sets the sleep before the first retry.
func WithInitialDelay(d time.Duration) Option { return func(p *policy) { p.initialDelay = d } }

// WithMaxDelay caps the sleep between attempts.
func WithMaxDelay(d time.Duration) Option { return func(p *policy) { p.maxDelay = d } }

// WithMultiplier sets the growth factor of the sleep.
func WithMultiplier(m float64) Option { return func(p *policy) { p.multiplier = m } }

// WithRetryIf restricts retries to errors accepted by fn.
func WithRetryIf(fn func(error) bool) Option { return func(p *policy) { p.retryIf = fn } }

// WithOnRetry registers a callback invoked before each sleep.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(p *policy) { p.onRetry = fn }
}

// delay returns the sleep before retry number n, counting from one.
func (p *policy) delay(n int) time.Duration {
	d := float64(p.initialDelay)
	for i := 1; i < n; i++ {
		d *= p.multiplier
		if time.Duration(d) >= p.maxDelay {
			return p.maxDelay
		}
	}
	return min(time.Duration(d), p.maxDelay)
}

// Do runs op until it succeeds, returns a fatal or unaccepted error, runs
// out of retries, or ctx ends. By default op gets five retries starting at
// one second and doubling up to thirty.
func Do(ctx context.Context, op func(context.Context) error, opts ...Option) error {
	p := &policy{
		maxRetries:   5,
		initialDelay: time.Second,
		maxDelay:     30 * time.Second,
		multiplier:   2,
	}
	for _, opt := range opts {
		opt(p)
	}

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		switch {
		case err == nil:
			return nil
		case IsFatal(err):
			return fmt.Errorf("fatal error (not retrying): %w", err)
		case p.retryIf != nil && !p.retryIf(err):
			return err
		case attempt > p.maxRetries:
			return fmt.Errorf("operation failed after %d attempts: %w", attempt, err)
		}

		d := p.delay(attempt)
		if p.onRetry != nil {
			p.onRetry(attempt, d, err)
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("context cancelled after %d attempts: %w", attempt, errors.Join(ctx.Err(), err))
		case <-timer.C:
		}
	}
}

// FatalError marks an error that must not be retried.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err so that Do returns it immediately. Fatal(nil) is nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err carries a FatalError.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

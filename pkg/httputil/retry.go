package httputil

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// TransientError wraps an error to mark it as a transient upstream failure
// (connection error, 5xx, 429). [Retry] retries every non-permanent error,
// so the marker is informational for callers and logs.
type TransientError struct{ Err error }

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a [TransientError]. Transient(nil) returns nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is wrapped with [TransientError].
func IsTransient(err error) bool {
	return errors.As(err, new(*TransientError))
}

// PermanentError wraps an error that must not be retried (e.g. a 404).
type PermanentError struct{ Err error }

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so that [Retry] returns it without further attempts.
// Permanent(nil) returns nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

func isPermanent(err error) bool {
	return errors.As(err, new(*PermanentError))
}

// Policy configures [Retry].
type Policy struct {
	// Attempts is the total number of invocations, including the first.
	// Values below 1 are treated as 1.
	Attempts int

	// Initial is the wait after the first failure. Each further wait doubles.
	Initial time.Duration

	// Jitter adds up to Jitter*delay of random extra wait (0 disables it).
	Jitter float64

	// Sleep waits for d or until ctx is done. Nil uses a real timer.
	// Tests inject a recorder here instead of sleeping.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the policy used for catalog fetches:
// 3 attempts, 2 seconds initial delay, no jitter.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Initial: 2 * time.Second}
}

// Delay returns the wait before the retry that follows the given number of
// failed attempts: Initial * 2^(failed-1), without jitter.
func (p Policy) Delay(failed int) time.Duration {
	if failed < 1 {
		return 0
	}
	return p.Initial << (failed - 1)
}

// Retry executes fn up to p.Attempts times with exponential backoff.
// Any error triggers a retry unless it is wrapped with [Permanent].
// When attempts are exhausted the most recent error is returned unchanged.
// Returns ctx.Err() if the context is cancelled while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; isPermanent(err) {
			return err
		}

		if i < attempts-1 {
			if err := sleep(ctx, p.withJitter(p.Delay(i+1))); err != nil {
				return err
			}
		}
	}
	return lastErr
}

// RetryValue is [Retry] for operations that produce a value.
func RetryValue[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var out T
	err := Retry(ctx, p, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Do runs op with a fresh deadline per attempt and retries it according to p.
// It is the composition of [WithTimeout] inside [Retry].
func Do[T any](ctx context.Context, p Policy, timeout time.Duration, op func(context.Context) (T, error)) (T, error) {
	return RetryValue(ctx, p, func() (T, error) {
		return WithTimeout(ctx, timeout, op)
	})
}

func (p Policy) withJitter(d time.Duration) time.Duration {
	if p.Jitter <= 0 || d <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*p.Jitter*float64(d))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

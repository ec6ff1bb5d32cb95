package httputil

import (
	"context"
	"errors"
	"fmt"
	"time"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

// ErrTimeout is the sentinel matched by every [TimeoutError].
var ErrTimeout = errors.New("operation timed out")

// TimeoutError is returned by [WithTimeout] when the deadline fires before
// the operation finishes.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v after %s", ErrTimeout, e.After)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// Code implements [errs.Coder].
func (e *TimeoutError) Code() errs.Code { return errs.ErrCodeTimeout }

// WithTimeout races op against a deadline of d.
//
// op receives a context that is cancelled when the deadline fires, but
// WithTimeout does not wait for op to observe it: the late result is
// discarded and a [*TimeoutError] is returned immediately. The timer is
// released on every return path. A non-positive d runs op without a
// deadline. If the parent ctx ends first, its error is returned.
func WithTimeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return op(ctx)
	}

	opCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := op(opCtx)
		done <- result{v, err}
	}()

	var zero T
	select {
	case r := <-done:
		if r.err != nil && expired(ctx, opCtx) {
			return zero, &TimeoutError{After: d}
		}
		return r.v, r.err
	case <-opCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, &TimeoutError{After: d}
	}
}

// expired reports whether opCtx hit its own deadline while the parent is alive.
func expired(parent, opCtx context.Context) bool {
	return parent.Err() == nil && errors.Is(opCtx.Err(), context.DeadlineExceeded)
}

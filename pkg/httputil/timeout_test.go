package httputil

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

func TestWithTimeout_Completes(t *testing.T) {
	v, err := WithTimeout(context.Background(), time.Second, func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || v != 42 {
		t.Errorf("WithTimeout() = %d, %v; want 42, nil", v, err)
	}
}

func TestWithTimeout_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := WithTimeout(context.Background(), time.Second, func(context.Context) (int, error) {
		return 0, boom
	})
	if err != boom {
		t.Errorf("WithTimeout() error = %v, want %v", err, boom)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := WithTimeout(context.Background(), 20*time.Millisecond, func(context.Context) (int, error) {
		<-release // ignores its context on purpose
		return 1, nil
	})

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("WithTimeout() error = %v, want *TimeoutError", err)
	}
	if !errors.Is(err, ErrTimeout) {
		t.Error("TimeoutError should match ErrTimeout")
	}
	if errs.GetCode(err) != errs.ErrCodeTimeout {
		t.Errorf("GetCode() = %q, want %q", errs.GetCode(err), errs.ErrCodeTimeout)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("WithTimeout() waited %v for a discarded operation", elapsed)
	}
}

func TestWithTimeout_OperationSeesCancellation(t *testing.T) {
	seen := make(chan error, 1)
	_, err := WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		seen <- ctx.Err()
		return 0, ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("WithTimeout() error = %v, want ErrTimeout", err)
	}
	select {
	case got := <-seen:
		if !errors.Is(got, context.DeadlineExceeded) {
			t.Errorf("operation context error = %v, want DeadlineExceeded", got)
		}
	case <-time.After(time.Second):
		t.Error("operation context was never cancelled")
	}
}

func TestWithTimeout_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithTimeout(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if err != context.Canceled {
		t.Errorf("WithTimeout() error = %v, want context.Canceled", err)
	}
}

func TestWithTimeout_NoDeadline(t *testing.T) {
	v, err := WithTimeout(context.Background(), 0, func(ctx context.Context) (string, error) {
		if _, ok := ctx.Deadline(); ok {
			t.Error("zero timeout should not set a deadline")
		}
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Errorf("WithTimeout() = %q, %v", v, err)
	}
}

func TestDo_RetriesTimeouts(t *testing.T) {
	rec := &sleepRecorder{}
	calls := 0
	v, err := Do(context.Background(), testPolicy(rec), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "second", nil
	})
	if err != nil || v != "second" {
		t.Fatalf("Do() = %q, %v; want second, nil", v, err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(rec.waits) != 1 || rec.waits[0] != 2*time.Second {
		t.Errorf("waits = %v, want [2s]", rec.waits)
	}
}

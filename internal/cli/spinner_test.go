package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinner_StopBeforeCancel(t *testing.T) {
	s := newSpinner("Loading catalog...")
	s.Start()
	s.Stop()
	if s.Cancelled() {
		t.Error("a stopped spinner is not cancelled")
	}
}

func TestSpinner_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Fetching...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
	if !s.Cancelled() {
		t.Error("spinner should report cancellation")
	}
	s.Stop()
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing...")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithSuccess("done")
}

func TestSpinner_Animation(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Fetching catalog")
	s.w = &buf
	s.animate = true
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !strings.Contains(buf.String(), "Fetching catalog") {
		t.Errorf("animation output = %q", buf.String())
	}
}

func TestSpinner_SilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Fetching catalog")
	s.w = &buf
	s.animate = false
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.StopWithError("failed")
	if buf.Len() != 0 {
		t.Errorf("silent spinner wrote %q", buf.String())
	}
}

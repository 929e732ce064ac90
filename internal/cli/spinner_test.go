package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner(io.Discard, "Scanning...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		// Stop cancels the spinner's own context, never the parent.
		t.Log("spinner context closed by Stop")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, io.Discard, "Scanning with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, io.Discard, "Scanning with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(io.Discard, "Stopping twice...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Working...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Scanned project")

	if !strings.Contains(buf.String(), "Scanned project") {
		t.Errorf("output missing success message: %q", buf.String())
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Working...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Scan failed")

	if !strings.Contains(buf.String(), "Scan failed") {
		t.Errorf("output missing error message: %q", buf.String())
	}
}

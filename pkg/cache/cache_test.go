package cache

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	wmerrors "github.com/matzehuels/writeme/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHTTPKey(t *testing.T) {
	tests := []struct {
		namespace, key, want string
	}{
		{"github", "repo:a/b", "http:github:repo:a/b"},
		{"github:", "repo:a/b", "http:github:repo:a/b"},
	}
	for _, tt := range tests {
		if got := HTTPKey(tt.namespace, tt.key); got != tt.want {
			t.Errorf("HTTPKey(%q, %q) = %q, want %q", tt.namespace, tt.key, got, tt.want)
		}
	}
}

var (
	errUpstream = wmerrors.New(wmerrors.ErrCodeNetwork, "status 503")
	errMissing  = wmerrors.New(wmerrors.ErrCodeNotFound, "status 404")
)

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errUpstream)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errUpstream.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !wmerrors.Is(err, wmerrors.ErrCodeNetwork) {
		t.Error("wrapped error should keep its code")
	}
	if IsRetryable(errMissing) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestBackoffRun(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		fails     int
		retryable bool
		wantCalls int
		wantErr   error
	}{
		{name: "first try", fails: 0, retryable: true, wantCalls: 1},
		{name: "permanent failure", fails: 5, retryable: false, wantCalls: 1, wantErr: errMissing},
		{name: "recovers", fails: 1, retryable: true, wantCalls: 2},
		{name: "exhausted", fails: 5, retryable: true, wantCalls: 3, wantErr: errUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Run(ctx, func() error {
				calls++
				if calls > tt.fails {
					return nil
				}
				if tt.retryable {
					return Retryable(errUpstream)
				}
				return errMissing
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Run() error = %v", err)
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffRunZeroAttempts(t *testing.T) {
	calls := 0
	_ = Backoff{}.Run(context.Background(), func() error {
		calls++
		return Retryable(errUpstream)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("RetryWithBackoff() = %v after %d calls", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errUpstream)
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if !wmerrors.Is(err, wmerrors.ErrCodeCancelled) {
		t.Errorf("err = %v, want code %s", err, wmerrors.ErrCodeCancelled)
	}
}

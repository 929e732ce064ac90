package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/writeme/pkg/errors"
)

// Backoff is the retry policy for remote fetches made through the cache.
type Backoff struct {
	Attempts int           // total calls, including the first
	Delay    time.Duration // wait before the second call; doubled after each retry
}

// DefaultBackoff makes three attempts, waiting one then two seconds.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// RetryableError marks a fetch failure as transient.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return stderrors.As(err, &re)
}

// RetryWithBackoff runs fn under DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Run(ctx, fn)
}

// Run calls fn until it succeeds, returns an error not marked Retryable, or
// the attempts run out; the last error is returned in that case. A context
// cancelled while waiting yields an ErrCodeCancelled error wrapping ctx.Err().
func (b Backoff) Run(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(errors.ErrCodeCancelled, ctx.Err(), "retry after %q", err.Error())
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// Package httputil holds the retry helper shared by registry and tarball
// downloads.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RetryableError marks a transient failure (transport error, 5xx) that
// Retry should attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, doubling delay after each failure.
// Only errors wrapped in RetryableError are retried; others return at once.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff calls Retry with 3 attempts starting at 500ms.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, 500*time.Millisecond, fn)
}

// CheckStatus converts a non-200 response into an error. 5xx and 429 are
// returned as RetryableError.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	err := fmt.Errorf("%s returned status %d", resp.Request.URL, resp.StatusCode)
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return &RetryableError{Err: err}
	}
	return err
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

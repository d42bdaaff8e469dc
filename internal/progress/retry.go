package progress

import (
	"context"
	"errors"
	"time"
)

// retryableError marks a failure worth another attempt: a transport error
// or a 5xx answer.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retry runs fn up to attempts times, doubling delay after each retryable
// failure. Other errors are returned immediately. onRetry, if set, sees
// each failure that will be retried.
func retry(ctx context.Context, attempts int, delay time.Duration, onRetry func(attempt int, err error), fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !errors.As(err, new(*retryableError)) {
			return err
		}

		if i < attempts-1 {
			if onRetry != nil {
				onRetry(i+1, lastErr)
			}
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

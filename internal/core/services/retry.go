package services

import (
	"context"
	"errors"
	"time"

	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// Default retry policy values for transient index failures.
const (
	DefaultMaxRetries   = 3
	DefaultRetryDelay   = 2 * time.Second
	DefaultRetryBackoff = 2.0
)

// RetryPolicy controls how Retry spaces its attempts.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Delay is the wait before the second attempt.
	Delay time.Duration

	// Backoff multiplies the delay after each failed attempt.
	Backoff float64
}

// DefaultRetryPolicy returns the standard policy: 3 attempts, 2s
// initial delay, doubling between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxRetries,
		Delay:       DefaultRetryDelay,
		Backoff:     DefaultRetryBackoff,
	}
}

// permanentError wraps an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retryable: Retry returns it immediately
// without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry runs op until it succeeds, returns a permanent error, the
// attempts are exhausted, or ctx is cancelled. The last error is
// returned after exhaustion.
func Retry(ctx context.Context, policy RetryPolicy, name string, op func() error) error {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	delay := policy.Delay
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}

		if attempt == policy.MaxAttempts {
			logger.Error("%s failed after %d attempts: %v", name, policy.MaxAttempts, lastErr)
			break
		}

		logger.Warn("%s failed (attempt %d/%d): %v. Retrying in %s...",
			name, attempt, policy.MaxAttempts, lastErr, delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * policy.Backoff)
	}

	return lastErr
}

package embedding

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"time"
)

// MaxRetries bounds the attempts made for one encoder call.
const MaxRetries = 3

// RetryableError marks a transient encoder failure.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// backoff is swapped out in tests.
var backoff = Backoff

// classify marks network failures as retryable.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &RetryableError{Err: err}
	}
	return err
}

func withRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var (
		out     T
		lastErr error
	)
	for attempt := range MaxRetries {
		out, lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return out, lastErr
		}
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, fmt.Errorf("after %d attempts: %w", MaxRetries, lastErr)
}

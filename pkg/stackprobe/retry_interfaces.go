package stackprobe

import "time"

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the error is temporary and the operation should be retried.
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait after the given failed attempt.
	// attempt is one-indexed (1 = after the first attempt failed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the total attempt budget, the first attempt included.
	MaxAttempts() int
}

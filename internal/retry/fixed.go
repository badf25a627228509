package retry

import "time"

// FixedDelay pauses for the same duration after every failed attempt.
// No jitter, no growth.
type FixedDelay struct {
	maxAttempts int
	delay       time.Duration
}

// NewFixedDelay creates a strategy allowing maxAttempts attempts in total
// with delay between consecutive attempts. maxAttempts below 1 is treated as 1.
func NewFixedDelay(maxAttempts int, delay time.Duration) *FixedDelay {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if delay < 0 {
		delay = 0
	}
	return &FixedDelay{maxAttempts: maxAttempts, delay: delay}
}

// NextDelay returns the fixed delay regardless of attempt.
func (f *FixedDelay) NextDelay(int) time.Duration {
	return f.delay
}

// MaxAttempts returns the total attempt budget.
func (f *FixedDelay) MaxAttempts() int {
	return f.maxAttempts
}

package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// Executor orchestrates retry attempts with a backoff strategy and error classification.
//
// Thread Safety:
// The Executor itself is safe for concurrent use when calling Execute().
// WithOnRetry() and WithClock() return NEW instances; the original stays unchanged.
type Executor struct {
	classifier stackprobe.ErrorClassifier
	strategy   stackprobe.BackoffStrategy
	clock      clockwork.Clock
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor using the real clock.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier stackprobe.ErrorClassifier,
	strategy stackprobe.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		clock:      clockwork.NewRealClock(),
	}
}

// WithOnRetry returns a new Executor with the specified retry callback.
// The callback runs before each pause with the one-indexed attempt that just failed.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithClock returns a new Executor that waits on clock instead of wall time.
func (e *Executor) WithClock(clock clockwork.Clock) *Executor {
	if clock == nil {
		panic("clock cannot be nil")
	}
	clone := *e
	clone.clock = clock
	return &clone
}

// Execute runs the operation until it succeeds, fails fatally, or the attempt
// budget is spent. A fatal error is returned unchanged; an exhausted budget
// returns the last transient error wrapped with the attempt count.
// The last attempt never waits before giving up.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.strategy.MaxAttempts()
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := operation(ctx)
		if err == nil {
			return nil
		}

		if !e.classifier.IsTransient(err) {
			return err
		}

		if attempt >= maxAttempts {
			return fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.clock.After(delay):
		}
	}
}

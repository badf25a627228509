// Package retry provides bounded retry logic for database connection attempts.
//
// The package keeps the retry policy separate from what is being retried:
// an ErrorClassifier decides whether a failure is transient, a BackoffStrategy
// decides how many attempts are allowed and how long to pause between them, and
// a clockwork.Clock performs the pause so tests can drive time by hand.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewStartupClassifier(),
//	    retry.NewFixedDelay(3, 2*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
//
// # Error Classification
//
// StartupClassifier treats only the "database system is starting up" condition as
// transient. It checks the SQLSTATE first (57P03 cannot_connect_now) and falls back to
// a case-insensitive match on the message text when the error carries no code.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry() and WithClock()
// return independent copies.
package retry

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"

	"github.com/vvka-141/stackprobe/internal/logging"
	"github.com/vvka-141/stackprobe/internal/retry"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// Acquirer produces connection handles, tolerating a server that is still starting up.
type Acquirer struct {
	dialer     Dialer
	logger     stackprobe.Logger
	classifier stackprobe.ErrorClassifier
	clock      clockwork.Clock
	attempts   int
	delay      time.Duration
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithLogger sets where retry progress and the final diagnostic are written.
func WithLogger(logger stackprobe.Logger) Option {
	return func(a *Acquirer) {
		a.logger = logger
	}
}

// WithRetry overrides the attempt budget and the pause between attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(a *Acquirer) {
		a.attempts = attempts
		a.delay = delay
	}
}

// WithClock replaces the wall clock used for pauses.
func WithClock(clock clockwork.Clock) Option {
	return func(a *Acquirer) {
		a.clock = clock
	}
}

// NewAcquirer creates an Acquirer with the default policy: 3 attempts, 2s apart,
// retrying only the "starting up" condition.
func NewAcquirer(dialer Dialer, opts ...Option) *Acquirer {
	a := &Acquirer{
		dialer:     dialer,
		logger:     logging.NewNullLogger(),
		classifier: retry.NewStartupClassifier(),
		clock:      clockwork.NewRealClock(),
		attempts:   stackprobe.DefaultRetryAttempts,
		delay:      stackprobe.DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire opens a connection. On definitive failure it logs
// "Error connecting to PostgreSQL: ..." and returns a nil handle with an error
// wrapping stackprobe.ErrNoConnection. The budget is fresh on every call.
func (a *Acquirer) Acquire(ctx context.Context) (stackprobe.Conn, error) {
	strategy := retry.NewFixedDelay(a.attempts, a.delay)
	executor := retry.NewExecutor(a.classifier, strategy).
		WithClock(a.clock).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			a.logger.Verbose("attempt %d/%d: %v; retrying in %v", attempt, strategy.MaxAttempts(), err, delay)
		})

	var conn stackprobe.Conn
	err := executor.Execute(ctx, func(ctx context.Context) error {
		c, err := a.dialer.Dial(ctx)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		a.logger.Error("Error connecting to PostgreSQL: %v", err)
		return nil, fmt.Errorf("%w: %w", stackprobe.ErrNoConnection, err)
	}

	return conn, nil
}

// WithConnection acquires a connection, hands it to fn and always releases it,
// including when fn fails or panics. An acquisition failure is returned without calling fn.
func (a *Acquirer) WithConnection(ctx context.Context, fn func(conn stackprobe.Conn) error) (err error) {
	conn, err := a.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := Release(ctx, conn); releaseErr != nil && err == nil {
			err = fmt.Errorf("release connection: %w", releaseErr)
		}
	}()

	return fn(conn)
}

// Release closes conn. An absent handle is a no-op.
func Release(ctx context.Context, conn stackprobe.Conn) error {
	if conn == nil {
		return nil
	}
	if c, ok := conn.(*pgx.Conn); ok && c == nil {
		return nil
	}
	return conn.Close(ctx)
}

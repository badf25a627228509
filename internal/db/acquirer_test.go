package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

var (
	errStartingUp = &pgconn.PgError{Severity: "FATAL", Code: "57P03", Message: "the database system is starting up"}
	errAuthFailed = &pgconn.PgError{Severity: "FATAL", Code: "28P01", Message: `password authentication failed for user "app"`}
)

type fakeConn struct {
	closed int
}

func (c *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (c *fakeConn) Close(context.Context) error {
	c.closed++
	return nil
}

// fakeDialer fails with failErr for the first failures dials, then returns conn
// or finalErr when set.
type fakeDialer struct {
	mu       sync.Mutex
	dials    int
	failures int
	failErr  error
	finalErr error
	conn     *fakeConn
}

func (d *fakeDialer) Dial(context.Context) (stackprobe.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.dials++
	if d.dials <= d.failures {
		return nil, d.failErr
	}
	if d.finalErr != nil {
		return nil, d.finalErr
	}
	if d.conn == nil {
		d.conn = &fakeConn{}
	}
	return d.conn, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

type recordingLogger struct {
	mu      sync.Mutex
	verbose []string
	errors  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(string, ...interface{}) {}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// acquireWithFakeClock runs Acquire on a goroutine and advances the fake clock
// by 2s for each of the given pauses. It returns the handle, the error and the
// fake time that passed.
func acquireWithFakeClock(t *testing.T, dialer Dialer, logger stackprobe.Logger, pauses int) (stackprobe.Conn, time.Duration, error) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	start := clock.Now()
	acquirer := NewAcquirer(dialer, WithClock(clock), WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		conn stackprobe.Conn
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		conn, err := acquirer.Acquire(ctx)
		resCh <- result{conn, err}
	}()

	for i := 0; i < pauses; i++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1), "acquirer never started waiting (pause %d)", i+1)
		clock.Advance(stackprobe.DefaultRetryDelay)
	}

	select {
	case res := <-resCh:
		return res.conn, clock.Since(start), res.err
	case <-ctx.Done():
		t.Fatal("acquirer did not return")
		return nil, 0, nil
	}
}

func TestAcquire_SuccessFirstAttempt(t *testing.T) {
	dialer := &fakeDialer{}

	conn, elapsed, err := acquireWithFakeClock(t, dialer, &recordingLogger{}, 0)

	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, 1, dialer.dialCount())
	assert.Equal(t, time.Duration(0), elapsed)
}

func TestAcquire_StartupThenSuccess(t *testing.T) {
	for _, failures := range []int{1, 2} {
		failures := failures
		t.Run(fmt.Sprintf("%d_startup_failures", failures), func(t *testing.T) {
			dialer := &fakeDialer{failures: failures, failErr: errStartingUp}
			logger := &recordingLogger{}

			conn, elapsed, err := acquireWithFakeClock(t, dialer, logger, failures)

			require.NoError(t, err)
			require.NotNil(t, conn)
			assert.Equal(t, failures+1, dialer.dialCount())
			assert.Equal(t, time.Duration(failures)*2*time.Second, elapsed)
			assert.Len(t, logger.verbose, failures)
			assert.Empty(t, logger.errors)
		})
	}
}

func TestAcquire_StartupExhaustsBudget(t *testing.T) {
	for _, failures := range []int{3, 10} {
		failures := failures
		t.Run(fmt.Sprintf("%d_startup_failures", failures), func(t *testing.T) {
			dialer := &fakeDialer{failures: failures, failErr: errStartingUp}
			logger := &recordingLogger{}

			conn, elapsed, err := acquireWithFakeClock(t, dialer, logger, 2)

			require.Error(t, err)
			assert.Nil(t, conn)
			assert.ErrorIs(t, err, stackprobe.ErrNoConnection)
			assert.Equal(t, 3, dialer.dialCount())
			assert.Equal(t, 4*time.Second, elapsed)
			require.Len(t, logger.errors, 1)
			assert.Contains(t, logger.errors[0], "Error connecting to PostgreSQL: ")
			assert.Contains(t, logger.errors[0], "starting up")
		})
	}
}

func TestAcquire_StartupReportedAsText(t *testing.T) {
	// A dial error without a SQLSTATE, wrapped the way PgxDialer wraps it.
	textErr := wrapConnectionError(
		errors.New("failed to connect to `host=db.invalid user=app database=app`: the database system is starting up"),
		&config.Database{Host: "db.invalid", Port: 5432, Database: "app", User: "app"})
	dialer := &fakeDialer{failures: 3, failErr: textErr}

	conn, elapsed, err := acquireWithFakeClock(t, dialer, &recordingLogger{}, 2)

	assert.Nil(t, conn)
	assert.ErrorIs(t, err, stackprobe.ErrNoConnection)
	assert.Equal(t, 3, dialer.dialCount())
	assert.Equal(t, 4*time.Second, elapsed)
}

func TestAcquire_NonTransientFailsImmediately(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"auth failure", errAuthFailed},
		{"refused", wrapConnectionError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), &config.Database{Host: "127.0.0.1", Port: 5432, Database: "app", User: "app"})},
		{"missing database", &pgconn.PgError{Code: "3D000", Message: `database "app" does not exist`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialer := &fakeDialer{failures: 1, failErr: tt.err}
			logger := &recordingLogger{}

			conn, elapsed, err := acquireWithFakeClock(t, dialer, logger, 0)

			assert.Nil(t, conn)
			assert.ErrorIs(t, err, stackprobe.ErrNoConnection)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, dialer.dialCount())
			assert.Equal(t, time.Duration(0), elapsed)
			assert.Len(t, logger.errors, 1)
			assert.Empty(t, logger.verbose)
		})
	}
}

func TestAcquire_StartupThenFatal(t *testing.T) {
	dialer := &fakeDialer{failures: 1, failErr: errStartingUp, finalErr: errAuthFailed}

	conn, elapsed, err := acquireWithFakeClock(t, dialer, &recordingLogger{}, 1)

	assert.Nil(t, conn)
	assert.ErrorIs(t, err, errAuthFailed)
	assert.Equal(t, 2, dialer.dialCount())
	assert.Equal(t, 2*time.Second, elapsed)
}

func TestAcquire_BudgetIsPerCall(t *testing.T) {
	clock := clockwork.NewFakeClock()
	dialer := &fakeDialer{failures: 2, failErr: errStartingUp}
	acquirer := NewAcquirer(dialer, WithClock(clock))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := acquirer.Acquire(ctx)
		done <- err
	}()
	for i := 0; i < 2; i++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(2 * time.Second)
	}
	require.NoError(t, <-done)

	// Two failures were spent above; a second call still gets all three attempts.
	dialer.mu.Lock()
	dialer.dials = 0
	dialer.mu.Unlock()

	go func() {
		_, err := acquirer.Acquire(ctx)
		done <- err
	}()
	for i := 0; i < 2; i++ {
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(2 * time.Second)
	}
	require.NoError(t, <-done)
	assert.Equal(t, 3, dialer.dialCount())
}

func TestAcquire_ContextCancelledDuringWait(t *testing.T) {
	clock := clockwork.NewFakeClock()
	dialer := &fakeDialer{failures: 3, failErr: errStartingUp}
	acquirer := NewAcquirer(dialer, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := acquirer.Acquire(ctx)
		done <- err
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	cancel()

	err := <-done
	assert.ErrorIs(t, err, stackprobe.ErrNoConnection)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, dialer.dialCount())
}

func TestAcquire_WithRetryOverride(t *testing.T) {
	clock := clockwork.NewFakeClock()
	dialer := &fakeDialer{failures: 5, failErr: errStartingUp}
	acquirer := NewAcquirer(dialer, WithClock(clock), WithRetry(1, time.Second))

	conn, err := acquirer.Acquire(context.Background())

	assert.Nil(t, conn)
	assert.ErrorIs(t, err, stackprobe.ErrNoConnection)
	assert.Equal(t, 1, dialer.dialCount())
}

func TestRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("nil interface", func(t *testing.T) {
		assert.NoError(t, Release(ctx, nil))
	})

	t.Run("typed nil pgx conn", func(t *testing.T) {
		var conn *pgx.Conn
		assert.NoError(t, Release(ctx, conn))
	})

	t.Run("open conn is closed", func(t *testing.T) {
		conn := &fakeConn{}
		require.NoError(t, Release(ctx, conn))
		assert.Equal(t, 1, conn.closed)
	})
}

func TestWithConnection(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	t.Run("releases after success", func(t *testing.T) {
		dialer := &fakeDialer{}
		acquirer := NewAcquirer(dialer)

		var seen stackprobe.Conn
		err := acquirer.WithConnection(ctx, func(conn stackprobe.Conn) error {
			seen = conn
			return nil
		})

		require.NoError(t, err)
		require.NotNil(t, seen)
		assert.Equal(t, 1, dialer.conn.closed)
	})

	t.Run("releases after error", func(t *testing.T) {
		dialer := &fakeDialer{}
		acquirer := NewAcquirer(dialer)

		err := acquirer.WithConnection(ctx, func(stackprobe.Conn) error {
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, dialer.conn.closed)
	})

	t.Run("releases after panic", func(t *testing.T) {
		dialer := &fakeDialer{}
		acquirer := NewAcquirer(dialer)

		assert.Panics(t, func() {
			_ = acquirer.WithConnection(ctx, func(stackprobe.Conn) error {
				panic("boom")
			})
		})
		assert.Equal(t, 1, dialer.conn.closed)
	})

	t.Run("acquisition failure skips fn", func(t *testing.T) {
		dialer := &fakeDialer{failures: 1, failErr: errAuthFailed}
		acquirer := NewAcquirer(dialer)

		called := false
		err := acquirer.WithConnection(ctx, func(stackprobe.Conn) error {
			called = true
			return nil
		})

		assert.ErrorIs(t, err, stackprobe.ErrNoConnection)
		assert.False(t, called)
	})
}

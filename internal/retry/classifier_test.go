package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestStartupClassifier_IsTransient(t *testing.T) {
	classifier := NewStartupClassifier()

	tests := []struct {
		name        string
		err         error
		isTransient bool
	}{
		{
			name:        "nil error",
			err:         nil,
			isTransient: false,
		},
		{
			name:        "cannot_connect_now (57P03)",
			err:         &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"},
			isTransient: true,
		},
		{
			name:        "cannot_connect_now wrapped",
			err:         fmt.Errorf("dial: %w", &pgconn.PgError{Code: "57P03", Message: "not yet accepting connections"}),
			isTransient: true,
		},
		{
			name:        "invalid_password (28P01)",
			err:         &pgconn.PgError{Code: "28P01", Message: "password authentication failed"},
			isTransient: false,
		},
		{
			name:        "structured code wins over text",
			err:         &pgconn.PgError{Code: "3D000", Message: "database \"starting up\" does not exist"},
			isTransient: false,
		},
		{
			name:        "admin_shutdown (57P01) is not startup",
			err:         &pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"},
			isTransient: false,
		},
		{
			name:        "text fallback lowercase",
			err:         errors.New("FATAL: the database system is starting up"),
			isTransient: true,
		},
		{
			name:        "text fallback mixed case",
			err:         errors.New("FATAL: The Database System Is STARTING UP"),
			isTransient: true,
		},
		{
			name:        "connection refused is fatal",
			err:         errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			isTransient: false,
		},
		{
			name:        "context canceled is fatal",
			err:         context.Canceled,
			isTransient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.isTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.isTransient)
			}
		})
	}
}

func TestClassifierFunc(t *testing.T) {
	sentinel := errors.New("retry me")
	classifier := ClassifierFunc(func(err error) bool { return errors.Is(err, sentinel) })

	if !classifier.IsTransient(fmt.Errorf("wrapped: %w", sentinel)) {
		t.Error("expected wrapped sentinel to be transient")
	}
	if classifier.IsTransient(errors.New("other")) {
		t.Error("expected unrelated error to be fatal")
	}
}

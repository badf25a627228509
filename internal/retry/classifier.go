package retry

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes for the startup condition.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	// Class 57 - Operator Intervention
	pgCodeCannotConnectNow = "57P03"
)

// startupPattern is what the server says while it is still recovering or initializing:
// "the database system is starting up".
const startupPattern = "starting up"

// StartupClassifier implements ErrorClassifier for the "server still starting up" condition.
// Every other failure is fatal.
type StartupClassifier struct{}

// NewStartupClassifier creates a new startup classifier.
func NewStartupClassifier() *StartupClassifier {
	return &StartupClassifier{}
}

// IsTransient reports whether err says the server is still starting up.
func (c *StartupClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Structured signal wins: a server error with a code is judged by the code alone.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code != "" {
		return pgErr.Code == pgCodeCannotConnectNow
	}

	// Text fallback for errors without a SQLSTATE (wrapped dial errors, other drivers).
	return strings.Contains(strings.ToLower(err.Error()), startupPattern)
}

// ClassifierFunc adapts a plain function to the ErrorClassifier interface.
type ClassifierFunc func(err error) bool

// IsTransient calls f(err).
func (f ClassifierFunc) IsTransient(err error) bool {
	return f(err)
}

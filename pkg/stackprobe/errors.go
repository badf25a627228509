package stackprobe

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	conn, err := acquirer.Acquire(ctx)
//	if errors.Is(err, stackprobe.ErrNoConnection) {
//	    // skip the work that needed the database
//	}
var (
	// ErrInvalidConfig indicates the environment or project file is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoConnection is the "no connection" result of a failed acquisition.
	ErrNoConnection = errors.New("no connection")

	// ErrMissingDependency indicates a required binary is absent from PATH.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrSubprocessFailed indicates a delegated subprocess exited non-zero.
	ErrSubprocessFailed = errors.New("subprocess failed")
)

// ExitError carries an explicit process exit code, typically the code of a
// subprocess whose status is propagated as the command's own.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError wraps err so that ExitCodeForError reports code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, the explicit code of an ExitError,
// semantic codes for known errors, and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingDependency):
		return ExitGeneralError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
	} {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

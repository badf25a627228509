// Package toolexec runs external CLIs and looks them up on PATH.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExitCodeNotFound is reported when the binary could not be started at all.
const ExitCodeNotFound = 127

// Result is the captured outcome of one command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts command execution so callers can be tested without real binaries.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Result, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// Run executes name with args and captures both streams. A non-zero exit is
// not an error: it is reported through Result.ExitCode. The error is set only
// when the command could not be run, with ExitCode 127 if it was not found.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		result.ExitCode = ExitCodeNotFound
	}
	return result, err
}

// LookupFunc resolves a command name to an executable path.
type LookupFunc func(file string) (string, error)

// LookPath searches PATH the way a shell would.
var LookPath LookupFunc = exec.LookPath

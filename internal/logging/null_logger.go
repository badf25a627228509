package logging

import "github.com/vvka-141/stackprobe/pkg/stackprobe"

// NullLogger discards everything.
type NullLogger struct{}

var _ stackprobe.Logger = NullLogger{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Verbose(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{})    {}
func (NullLogger) Error(string, ...interface{})   {}

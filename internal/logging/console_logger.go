package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// ConsoleLogger writes human-readable log lines through zerolog's ConsoleWriter.
// Verbose maps to zerolog's debug level and is dropped unless verbose is enabled.
type ConsoleLogger struct {
	log zerolog.Logger
}

var _ stackprobe.Logger = (*ConsoleLogger)(nil)

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w.
// Colours are enabled only when w is a terminal and NO_COLOR is unset.
func NewConsoleLoggerWithWriter(w io.Writer, verbose bool) *ConsoleLogger {
	output := zerolog.ConsoleWriter{
		Out:          zerolog.SyncWriter(w),
		NoColor:      !colorEnabled(w),
		PartsExclude: []string{zerolog.TimestampFieldName},
		FormatLevel:  formatLevel,
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return &ConsoleLogger{
		log: zerolog.New(output).Level(level),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msg(render(format, args))
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(render(format, args))
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(render(format, args))
}

func render(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func formatLevel(i interface{}) string {
	switch i {
	case zerolog.LevelDebugValue:
		return "[VERBOSE]"
	case zerolog.LevelWarnValue:
		return "[WARN]"
	case zerolog.LevelErrorValue:
		return "[ERROR]"
	default:
		return ""
	}
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

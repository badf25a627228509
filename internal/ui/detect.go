package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents how subcommand output is rendered.
type Mode int

const (
	// ModePlain is used for pipes, CI logs and tests: no ANSI styling.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading a terminal.
	ModeStyled
)

// PlainEnv forces plain output when set to "1".
const PlainEnv = "STACKPROBE_PLAIN"

// DetectMode determines whether output written to w should be styled.
//
// Returns ModePlain if:
//   - STACKPROBE_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set
//   - w is not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode(w io.Writer) Mode {
	if os.Getenv(PlainEnv) == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

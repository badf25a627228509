// Package depcheck reports whether required system binaries are on PATH.
package depcheck

import (
	"fmt"
	"io"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/internal/toolexec"
	"github.com/vvka-141/stackprobe/internal/ui"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// Status is the outcome for one dependency.
type Status struct {
	Dependency config.Dependency
	Path       string
	Installed  bool
}

// Checker resolves dependencies through an injectable lookup.
type Checker struct {
	lookup toolexec.LookupFunc
}

// NewChecker creates a Checker. A nil lookup uses toolexec.LookPath.
func NewChecker(lookup toolexec.LookupFunc) *Checker {
	if lookup == nil {
		lookup = toolexec.LookPath
	}
	return &Checker{lookup: lookup}
}

// Check resolves every dependency, in order.
func (c *Checker) Check(deps []config.Dependency) []Status {
	statuses := make([]Status, 0, len(deps))
	for _, dep := range deps {
		path, err := c.lookup(dep.Command)
		statuses = append(statuses, Status{
			Dependency: dep,
			Path:       path,
			Installed:  err == nil,
		})
	}
	return statuses
}

// Report writes "<name> is installed." or "<name> is NOT installed." for every
// dependency and returns ErrMissingDependency if any was absent. Every line is
// written before the error is returned.
func Report(statuses []Status, out io.Writer, styler ui.Styler) error {
	var missing []string
	for _, s := range statuses {
		if s.Installed {
			fmt.Fprintf(out, "%s %s.\n", s.Dependency.Name, styler.Success("is installed"))
			continue
		}
		fmt.Fprintf(out, "%s %s.\n", s.Dependency.Name, styler.Error("is NOT installed"))
		missing = append(missing, s.Dependency.Command)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", stackprobe.ErrMissingDependency, missing)
	}
	return nil
}

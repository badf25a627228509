package db

import (
	"fmt"
	"strings"

	"github.com/vvka-141/stackprobe/internal/config"
)

// connectionHint pairs a dial-error pattern with what the operator should check.
type connectionHint struct {
	patterns []string
	headline func(cfg *config.Database) string
	checks   []string
}

// connectionHints are tried in order; the first matching pattern wins.
var connectionHints = []connectionHint{
	{
		patterns: []string{"starting up", "57p03"},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("server at %s is still starting up", cfg.Addr())
		},
		checks: []string{"the server accepts connections once recovery finishes"},
	},
	{
		patterns: []string{"connection refused", "actively refused", "no such file or directory"},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("nothing is listening at %s", cfg.Addr())
		},
		checks: []string{
			"PostgreSQL is running (pg_isready)",
			"PGHOST and PGPORT point at it",
		},
	},
	{
		patterns: []string{"no such host", "no host"},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("cannot resolve PGHOST %q", cfg.Host)
		},
		checks: []string{"the service name is spelled as the network defines it"},
	},
	{
		patterns: []string{"password authentication failed"},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("PGUSER %q was rejected", cfg.User)
		},
		checks: []string{"PGPASSWORD matches the role's password"},
	},
	{
		patterns: []string{"role \""},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("role %q does not exist on the server", cfg.User)
		},
		checks: []string{"PGUSER names an existing role (POSTGRES_USER in the image)"},
	},
	{
		patterns: []string{"database \""},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("database %q does not exist", cfg.Database)
		},
		checks: []string{"PGDATABASE exists (createdb <name>)"},
	},
	{
		patterns: []string{"timeout", "timed out"},
		headline: func(cfg *config.Database) string {
			return fmt.Sprintf("no answer from %s within PGCONNECT_TIMEOUT", cfg.Addr())
		},
		checks: []string{"the host is reachable from this container"},
	},
	{
		patterns: []string{"ssl", "tls"},
		headline: func(*config.Database) string {
			return "TLS negotiation failed"
		},
		checks: []string{"PGSSLMODE agrees with the server's ssl setting"},
	},
}

// wrapConnectionError adds operator guidance to a dial failure.
// The original error stays in the chain so the startup classifier still sees it.
func wrapConnectionError(err error, cfg *config.Database) error {
	errStr := strings.ToLower(err.Error())

	for _, hint := range connectionHints {
		for _, p := range hint.patterns {
			if strings.Contains(errStr, p) {
				return fmt.Errorf("%s\n\nCheck that:\n  - %s\n\nOriginal error: %w",
					hint.headline(cfg), strings.Join(hint.checks, "\n  - "), err)
			}
		}
	}

	return fmt.Errorf("failed to connect to database: %w", err)
}

package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// Dialer opens one database session per call.
type Dialer interface {
	Dial(ctx context.Context) (stackprobe.Conn, error)
}

// DialerFunc adapts a plain function to the Dialer interface.
type DialerFunc func(ctx context.Context) (stackprobe.Conn, error)

// Dial calls f(ctx).
func (f DialerFunc) Dial(ctx context.Context) (stackprobe.Conn, error) {
	return f(ctx)
}

// PgxDialer opens single pgx connections from environment-sourced parameters.
type PgxDialer struct {
	config    *config.Database
	sessionID func() string
}

// NewPgxDialer creates a dialer for cfg. Each session is tagged with
// application_name "<AppName>/<8 hex chars>" so it can be found in pg_stat_activity.
func NewPgxDialer(cfg *config.Database) *PgxDialer {
	return &PgxDialer{
		config: cfg,
		sessionID: func() string {
			return uuid.NewString()[:8]
		},
	}
}

// Dial connects once. Errors carry operator guidance and keep the driver error
// reachable through errors.As / errors.Is.
func (d *PgxDialer) Dial(ctx context.Context) (stackprobe.Conn, error) {
	appName := d.config.AppName
	if appName == "" {
		appName = stackprobe.DefaultAppName
	}

	connConfig, err := pgx.ParseConfig(BuildConnectionString(d.config, appName+"/"+d.sessionID()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, wrapConnectionError(err, d.config)
	}
	return conn, nil
}

// BuildConnectionString converts the environment parameters to a keyword/value
// DSN. Values are quoted, so IPv6 literals, socket directories and passwords
// with spaces or quotes pass through unchanged.
func BuildConnectionString(cfg *config.Database, appName string) string {
	settings := [][2]string{
		{"host", cfg.Host},
		{"port", strconv.Itoa(cfg.Port)},
		{"dbname", cfg.Database},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"sslmode", cfg.SSLMode},
		{"application_name", appName},
	}
	if cfg.ConnectTimeout > 0 {
		settings = append(settings, [2]string{"connect_timeout", strconv.Itoa(cfg.ConnectTimeout)})
	}

	parts := make([]string, 0, len(settings))
	for _, kv := range settings {
		if kv[1] == "" {
			continue
		}
		parts = append(parts, kv[0]+"="+quoteDSNValue(kv[1]))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

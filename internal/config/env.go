package config

import (
	"errors"
	"fmt"
	"net"
	"path"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// Database holds the connection parameters read from the standard libpq
// environment variables. It is populated once at startup.
type Database struct {
	Host     string `envconfig:"PGHOST" required:"true"`
	Database string `envconfig:"PGDATABASE" required:"true"`
	User     string `envconfig:"PGUSER" required:"true"`
	Password string `envconfig:"PGPASSWORD"`
	Port     int    `envconfig:"PGPORT" default:"5432"`

	SSLMode string `envconfig:"PGSSLMODE" default:"prefer"`

	// ConnectTimeout is in seconds, as libpq reads it. 0 waits indefinitely.
	ConnectTimeout int `envconfig:"PGCONNECT_TIMEOUT" default:"10"`

	AppName string `envconfig:"PGAPPNAME" default:"stackprobe"`
}

var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// LoadDatabase reads and validates the PG* environment variables.
// Missing or malformed values fail with ErrInvalidConfig before any connection is attempted.
func LoadDatabase() (*Database, error) {
	var db Database
	if err := envconfig.Process("", &db); err != nil {
		return nil, fmt.Errorf("%v: %w", err, stackprobe.ErrInvalidConfig)
	}
	if err := db.Validate(); err != nil {
		return nil, err
	}
	return &db, nil
}

// Validate checks that required fields are present and values are in range.
// It returns a multi-error if multiple validation failures occur.
func (d *Database) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Host) == "" {
		errs = append(errs, fmt.Errorf("PGHOST is required: %w", stackprobe.ErrInvalidConfig))
	}
	if strings.TrimSpace(d.Database) == "" {
		errs = append(errs, fmt.Errorf("PGDATABASE is required: %w", stackprobe.ErrInvalidConfig))
	}
	if strings.TrimSpace(d.User) == "" {
		errs = append(errs, fmt.Errorf("PGUSER is required: %w", stackprobe.ErrInvalidConfig))
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Errorf("PGPORT %d is out of range 1-65535: %w", d.Port, stackprobe.ErrInvalidConfig))
	}
	if d.SSLMode != "" && !validSSLModes[d.SSLMode] {
		errs = append(errs, fmt.Errorf("PGSSLMODE %q is not a valid sslmode: %w", d.SSLMode, stackprobe.ErrInvalidConfig))
	}
	if d.ConnectTimeout < 0 {
		errs = append(errs, fmt.Errorf("PGCONNECT_TIMEOUT cannot be negative: %w", stackprobe.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Addr describes the server for log lines: host:port, [v6]:port, or the socket
// file when Host is a Unix-domain socket directory.
func (d *Database) Addr() string {
	port := strconv.Itoa(d.Port)
	if d.IsUnixSocket() {
		return path.Join(d.Host, ".s.PGSQL."+port)
	}
	return net.JoinHostPort(d.Host, port)
}

// IsUnixSocket reports whether Host names a socket directory, as libpq treats
// any absolute path.
func (d *Database) IsUnixSocket() bool {
	return strings.HasPrefix(d.Host, "/")
}

package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/internal/db"
	"github.com/vvka-141/stackprobe/internal/testinfra"
)

// TestConnEnv names the variable holding a connection string to an existing
// server. When set, no container is started.
const TestConnEnv = "STACKPROBE_TEST_CONN"

var (
	testContainerOnce sync.Once
	testContainerDB   *config.Database
	testContainerErr  error
)

func getOrStartTestContainer() (*config.Database, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartSimplePostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerDB = container.Database
	})
	return testContainerDB, testContainerErr
}

// GetTestDatabase returns connection parameters for the test server.
// Priority: STACKPROBE_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestDatabase(t *testing.T) *config.Database {
	t.Helper()

	if connString := os.Getenv(TestConnEnv); connString != "" {
		cfg, err := databaseFromConnString(connString)
		if err != nil {
			t.Fatalf("parse %s: %v", TestConnEnv, err)
		}
		return cfg
	}

	cfg, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestConnEnv, err)
	}
	copied := *cfg
	return &copied
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestDatabase for convenience.
func RequireDatabase(t *testing.T) *config.Database {
	t.Helper()

	SkipIfShort(t)
	return GetTestDatabase(t)
}

// RequireScratchDatabase creates a uniquely named database on the test server,
// drops it when the test ends, and returns parameters pointing at it.
func RequireScratchDatabase(t *testing.T) *config.Database {
	t.Helper()

	server := RequireDatabase(t)
	name := "stackprobe_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")

	t.Cleanup(CreateTestDB(t, server, name))

	scratch := *server
	scratch.Database = name
	return &scratch
}

// CreateTestDB creates a test database with the given name.
// Returns a cleanup function that should be called with t.Cleanup().
func CreateTestDB(t *testing.T, server *config.Database, dbName string) func() {
	t.Helper()

	ctx := context.Background()

	conn, err := connect(ctx, server)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}
	defer conn.Close(ctx) //nolint:errcheck

	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{dbName}.Sanitize())); err != nil {
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	return func() {
		CleanupTestDB(t, server, dbName)
	}
}

// CleanupTestDB drops the test database.
// Safe to call multiple times (uses DROP DATABASE IF EXISTS).
func CleanupTestDB(t *testing.T, server *config.Database, dbName string) {
	t.Helper()

	ctx := context.Background()

	conn, err := connect(ctx, server)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer conn.Close(ctx) //nolint:errcheck

	terminateQuery := `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`
	if _, err := conn.Exec(ctx, terminateQuery, dbName); err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	if _, err := conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", pgx.Identifier{dbName}.Sanitize())); err != nil {
		t.Logf("Warning: Failed to drop test database %s: %v", dbName, err)
	}
}

func connect(ctx context.Context, cfg *config.Database) (*pgx.Conn, error) {
	return pgx.Connect(ctx, db.BuildConnectionString(cfg, cfg.AppName))
}

func databaseFromConnString(connString string) (*config.Database, error) {
	parsed, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	sslMode := "disable"
	if parsed.TLSConfig != nil {
		sslMode = "require"
	}

	return &config.Database{
		Host:           parsed.Host,
		Port:           int(parsed.Port),
		Database:       parsed.Database,
		User:           parsed.User,
		Password:       parsed.Password,
		SSLMode:        sslMode,
		ConnectTimeout: 10,
		AppName:        "stackprobe-test",
	}, nil
}

package stackprobe

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error (including a missing required binary)
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
//
// Subcommands that delegate to a subprocess exit with the subprocess's own code instead.
const (
	ExitSuccess      = 0  // Subcommand completed successfully
	ExitGeneralError = 1  // Unknown or unclassified error, or missing dependency
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration or environment
)

const (
	// DefaultRetryAttempts is the total number of connection attempts, the first one included.
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the fixed pause between two connection attempts.
	DefaultRetryDelay = 2 * time.Second

	// DefaultPort is used when PGPORT is unset.
	DefaultPort = 5432

	// DefaultAppName prefixes the application_name reported to PostgreSQL.
	DefaultAppName = "stackprobe"

	// DefaultFetchURL is the JSON resource fetched by the fetch subcommand.
	DefaultFetchURL = "https://jsonplaceholder.typicode.com/todos/1"

	// DefaultFetchTimeout bounds the whole HTTP exchange.
	DefaultFetchTimeout = 10 * time.Second

	// ConfigFileName is the optional project file read from --config-dir.
	ConfigFileName = "stackprobe.yaml"
)

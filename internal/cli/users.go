package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/internal/db"
	"github.com/vvka-141/stackprobe/internal/logging"
	"github.com/vvka-141/stackprobe/internal/users"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Create the users table, insert two sample users and list them",
	Long: `Connects to PostgreSQL using the PG* environment variables, creating the
users table if needed, inserting two sample users and printing every row.

Each step acquires its own connection. A server that is still starting up is
retried (3 attempts, 2s apart by default); any other connection failure is
reported once and the step is skipped. Failing steps do not change the exit code.`,
	Args: cobra.NoArgs,
	RunE: runUsers,
}

var usersFlags struct {
	table bool
}

// newDialer is replaced in tests.
var newDialer = func(cfg *config.Database) db.Dialer {
	return db.NewPgxDialer(cfg)
}

func init() {
	usersCmd.Flags().BoolVar(&usersFlags.table, "table", false, "Render the user listing as a table")
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, _ []string) error {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	// The connection diagnostic is part of the example's report, so it goes to stdout.
	logger := logging.NewConsoleLoggerWithWriter(cmd.OutOrStdout(), getVerboseFlag(cmd))
	logger.Verbose("Connecting to %s/%s as %s", dbCfg.Addr(), dbCfg.Database, dbCfg.User)

	acquirer := db.NewAcquirer(newDialer(dbCfg),
		db.WithLogger(logger),
		db.WithRetry(projectCfg.Retry.Attempts, projectCfg.Retry.Delay),
	)

	users.NewExample(users.NewStore(acquirer), cmd.OutOrStdout(), newStyler(cmd), usersFlags.table).
		Run(cmd.Context())
	return nil
}

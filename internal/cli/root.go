package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/internal/logging"
	"github.com/vvka-141/stackprobe/internal/ui"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

var rootCmd = &cobra.Command{
	Use:   "stackprobe",
	Short: "Smoke-test a deployment stack from inside the container",
	Long: `stackprobe exercises the pieces a build image is expected to provide and
reports what it finds: a PostgreSQL server, system binaries, outbound HTTP,
a numerical library and package-manager CLIs.

Database parameters come from PGHOST, PGDATABASE, PGUSER, PGPASSWORD and PGPORT
(a .env file in the working directory is loaded first). Optional settings live
in stackprobe.yaml under --config-dir.

Exit Codes:
  0  - Success
  1  - General error (e.g. a required binary is missing)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  N  - numeric propagates the probe command's own exit code`,
	SilenceUsage: true,
}

var rootFlags struct {
	configDir string
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configDir, "config-dir", ".", "Directory containing "+stackprobe.ConfigFileName)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// loadProjectConfig loads .env and stackprobe.yaml. A missing file yields defaults.
func loadProjectConfig() (*config.ProjectConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %v: %w", err, stackprobe.ErrInvalidConfig)
	}

	projectCfg, err := config.LoadOrDefault(rootFlags.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", stackprobe.ConfigFileName, err)
	}
	return projectCfg, nil
}

func newLogger(cmd *cobra.Command) stackprobe.Logger {
	return logging.NewConsoleLoggerWithWriter(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

func newStyler(cmd *cobra.Command) ui.Styler {
	return ui.NewStyler(ui.DetectMode(cmd.OutOrStdout()))
}

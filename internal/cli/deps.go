package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/stackprobe/internal/depcheck"
	"github.com/vvka-141/stackprobe/internal/toolexec"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check that required system binaries are installed",
	Long: `Looks up each configured binary on PATH (ffmpeg and pdftoppm by default)
and prints whether it is installed. Exits 1 if any is missing.`,
	Args: cobra.NoArgs,
	RunE: runDeps,
}

// lookPath is replaced in tests.
var lookPath toolexec.LookupFunc = toolexec.LookPath

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(cmd *cobra.Command, _ []string) error {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	statuses := depcheck.NewChecker(lookPath).Check(projectCfg.Deps)

	logger := newLogger(cmd)
	for _, s := range statuses {
		if s.Installed {
			logger.Verbose("%s resolved to %s", s.Dependency.Command, s.Path)
		}
	}

	if err := depcheck.Report(statuses, cmd.OutOrStdout(), newStyler(cmd)); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Hello from stackprobe deps")
	return nil
}

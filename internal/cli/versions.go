package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/stackprobe/internal/toolexec"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Print the runtime version and the version of each configured tool",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

// toolRunner is replaced in tests.
var toolRunner toolexec.Runner = toolexec.ExecRunner{}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, _ []string) error {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	toolexec.ReportVersions(cmd.Context(), toolRunner, projectCfg.Tools, cmd.OutOrStdout(), newLogger(cmd))
	return nil
}

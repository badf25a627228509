package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/stackprobe/internal/fetch"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "GET a JSON resource and print it",
	Long: `Issues a single GET (no retries) against the configured URL and prints
"Data fetched successfully!" with the decoded body on HTTP 200, or
"Failed to fetch data." otherwise. The exit code is 0 either way.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

var fetchFlags struct {
	url   string
	table bool
}

func init() {
	fetchCmd.Flags().StringVar(&fetchFlags.url, "url", "", "Override fetch.url from "+stackprobe.ConfigFileName)
	fetchCmd.Flags().BoolVar(&fetchFlags.table, "table", false, "Render a JSON object body as a table")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	url := projectCfg.Fetch.URL
	if fetchFlags.url != "" {
		url = fetchFlags.url
	}

	logger := newLogger(cmd)
	logger.Verbose("GET %s (timeout %v)", url, projectCfg.Fetch.Timeout)

	res, err := fetch.NewClient(projectCfg.Fetch.Timeout).Get(cmd.Context(), url)
	fetch.NewPrinter(cmd.OutOrStdout(), newStyler(cmd), fetchFlags.table).Print(res, err)
	return nil
}

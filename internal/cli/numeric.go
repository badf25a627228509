package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/vvka-141/stackprobe/internal/numeric"
)

var numericCmd = &cobra.Command{
	Use:   "numeric",
	Short: "Print a random matrix with column statistics, then run the probe command",
	Long: `Prints a random matrix (2x3 by default) and per-column statistics, then runs
the probe command (apt --version by default) and prints its output.

The probe's exit code becomes stackprobe's exit code, so a broken shared
library setup in the image fails the check.`,
	Args: cobra.NoArgs,
	RunE: runNumeric,
}

var numericFlags struct {
	seed uint64
}

func init() {
	numericCmd.Flags().Uint64Var(&numericFlags.seed, "seed", 0, "Seed for the random matrix (0 picks a random seed)")
	rootCmd.AddCommand(numericCmd)
}

func runNumeric(cmd *cobra.Command, _ []string) error {
	projectCfg, err := loadProjectConfig()
	if err != nil {
		return err
	}

	seed := numericFlags.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger := newLogger(cmd)
	logger.Verbose("numeric seed %d", seed)

	rng := rand.New(rand.NewPCG(seed, seed))
	example := numeric.NewExample(projectCfg.Numeric, rng, toolRunner, cmd.OutOrStdout(), newStyler(cmd), logger)
	return example.Run(cmd.Context())
}

// Package numeric is the numerical-library example: it prints a random matrix
// with per-column statistics, then delegates to a probe command whose exit
// status becomes the command's own.
package numeric

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/internal/toolexec"
	"github.com/vvka-141/stackprobe/internal/ui"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// ColumnSummary holds descriptive statistics for one matrix column.
type ColumnSummary struct {
	Column int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// RandomMatrix returns a rows x cols matrix of values drawn uniformly from [0, 1).
func RandomMatrix(rows, cols int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

// Summarize computes per-column statistics of m.
func Summarize(m mat.Matrix) []ColumnSummary {
	_, cols := m.Dims()
	summaries := make([]ColumnSummary, cols)
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		summaries[j] = ColumnSummary{
			Column: j,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(col),
			Max:    floats.Max(col),
		}
	}
	return summaries
}

// Example runs the matrix printout and the probe.
type Example struct {
	cfg    config.NumericConfig
	rng    *rand.Rand
	runner toolexec.Runner
	out    io.Writer
	styler ui.Styler
	logger stackprobe.Logger
}

// NewExample creates an Example. rng and runner are injectable for tests.
func NewExample(cfg config.NumericConfig, rng *rand.Rand, runner toolexec.Runner, out io.Writer, styler ui.Styler, logger stackprobe.Logger) *Example {
	return &Example{cfg: cfg, rng: rng, runner: runner, out: out, styler: styler, logger: logger}
}

// Run prints the matrix and summary, then runs the probe and prints its stdout.
// A probe that exits non-zero, or cannot start, yields an *stackprobe.ExitError
// carrying its code (127 when not found).
func (e *Example) Run(ctx context.Context) error {
	m := RandomMatrix(e.cfg.Rows, e.cfg.Cols, e.rng)
	fmt.Fprintf(e.out, "%v\n", mat.Formatted(m, mat.Squeeze()))

	fmt.Fprintln(e.out, e.summaryTable(Summarize(m)))
	fmt.Fprintln(e.out, "Hello from stackprobe numeric")

	if len(e.cfg.Probe) == 0 {
		return nil
	}

	name, args := e.cfg.Probe[0], e.cfg.Probe[1:]
	res, err := e.runner.Run(ctx, name, args...)
	if err != nil {
		code := res.ExitCode
		if code == 0 {
			code = stackprobe.ExitGeneralError
		}
		return stackprobe.NewExitError(code,
			fmt.Errorf("%w: %s: %w", stackprobe.ErrSubprocessFailed, name, err))
	}

	fmt.Fprintln(e.out, res.Stdout)

	if res.ExitCode != 0 {
		if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
			e.logger.Verbose("%s stderr: %s", name, stderr)
		}
		return stackprobe.NewExitError(res.ExitCode,
			fmt.Errorf("%w: %s exited with code %d", stackprobe.ErrSubprocessFailed, strings.Join(e.cfg.Probe, " "), res.ExitCode))
	}
	return nil
}

func (e *Example) summaryTable(summaries []ColumnSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Column),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Min),
			formatFloat(s.Max),
		})
	}
	return e.styler.Table([]string{"Column", "Mean", "StdDev", "Min", "Max"}, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

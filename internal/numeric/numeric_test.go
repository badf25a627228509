package numeric

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/internal/logging"
	"github.com/vvka-141/stackprobe/internal/toolexec"
	"github.com/vvka-141/stackprobe/internal/ui"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestRandomMatrix(t *testing.T) {
	m := RandomMatrix(2, 3, seeded())

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}

	assert.True(t, mat.Equal(m, RandomMatrix(2, 3, seeded())), "same seed, same matrix")
}

func TestSummarize(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		1, 10,
		3, 30,
	})

	got := Summarize(m)

	require.Len(t, got, 2)
	assert.InDelta(t, 2.0, got[0].Mean, 1e-12)
	assert.InDelta(t, 1.0, got[0].Min, 1e-12)
	assert.InDelta(t, 3.0, got[0].Max, 1e-12)
	assert.InDelta(t, 20.0, got[1].Mean, 1e-12)
	// sample standard deviation of {10, 30}
	assert.InDelta(t, 14.142135623730951, got[1].StdDev, 1e-9)
}

func TestExample_Run(t *testing.T) {
	cfg := config.Default().Numeric

	tests := []struct {
		name     string
		runner   toolexec.RunnerFunc
		wantCode int
		wantOut  string
	}{
		{
			name: "probe succeeds",
			runner: func(_ context.Context, name string, args ...string) (toolexec.Result, error) {
				assert.Equal(t, "apt", name)
				assert.Equal(t, []string{"--version"}, args)
				return toolexec.Result{Stdout: "apt 2.6.1 (amd64)"}, nil
			},
			wantCode: stackprobe.ExitSuccess,
			wantOut:  "apt 2.6.1 (amd64)\n",
		},
		{
			name: "probe exit code is propagated",
			runner: func(context.Context, string, ...string) (toolexec.Result, error) {
				return toolexec.Result{Stdout: "partial", Stderr: "GLIBC_2.38 not found", ExitCode: 42}, nil
			},
			wantCode: 42,
			wantOut:  "partial\n",
		},
		{
			name: "probe not found",
			runner: func(context.Context, string, ...string) (toolexec.Result, error) {
				return toolexec.Result{ExitCode: toolexec.ExitCodeNotFound}, errors.New(`exec: "apt": executable file not found in $PATH`)
			},
			wantCode: toolexec.ExitCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			example := NewExample(cfg, seeded(), tt.runner, &out, ui.NewStyler(ui.ModePlain), logging.NewNullLogger())

			err := example.Run(context.Background())

			assert.Equal(t, tt.wantCode, stackprobe.ExitCodeForError(err))
			if tt.wantCode != 0 {
				assert.ErrorIs(t, err, stackprobe.ErrSubprocessFailed)
			}
			assert.Contains(t, out.String(), "Hello from stackprobe numeric\n")
			assert.Contains(t, out.String(), "StdDev")
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func TestExample_Run_NoProbe(t *testing.T) {
	cfg := config.NumericConfig{Rows: 1, Cols: 1}
	runner := toolexec.RunnerFunc(func(context.Context, string, ...string) (toolexec.Result, error) {
		t.Fatal("runner must not be called without a probe")
		return toolexec.Result{}, nil
	})

	var out bytes.Buffer
	err := NewExample(cfg, seeded(), runner, &out, ui.NewStyler(ui.ModePlain), logging.NewNullLogger()).Run(context.Background())

	require.NoError(t, err)
}

package toolexec

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/vvka-141/stackprobe/internal/config"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// RuntimeVersion describes the running toolchain, e.g. "go1.24.4 linux/amd64".
func RuntimeVersion() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// ReportVersions prints the runtime version and then the trimmed stdout of each
// tool, one per line. A tool that fails or is absent is logged and skipped; it
// never fails the report.
func ReportVersions(ctx context.Context, runner Runner, tools []config.Tool, out io.Writer, logger stackprobe.Logger) {
	fmt.Fprintln(out, RuntimeVersion())

	for _, tool := range tools {
		res, err := runner.Run(ctx, tool.Name, tool.Args...)
		if err != nil {
			logger.Error("%s: %v", tool.Name, err)
			fmt.Fprintln(out)
			continue
		}
		if res.ExitCode != 0 {
			logger.Verbose("%s exited with code %d: %s", tool.Name, res.ExitCode, strings.TrimSpace(res.Stderr))
		}
		fmt.Fprintln(out, strings.TrimSpace(res.Stdout))
	}
}

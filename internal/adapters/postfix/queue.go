package postfix

import (
	"strings"

	"github.com/mailsnap/mailsnap/internal/core"
)

// Flush asks the mail transfer agent to retry delivery of every deferred
// message. Returns the combined output so a failure can be reported; the
// caller decides whether a failure aborts anything (it should not).
func Flush() (string, error) {
	res, err := core.RunCommand("postqueue", "-f")
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(res.Stdout + res.Stderr)
	if res.ExitCode != 0 {
		return out, core.OperationErr(res.Cmd, "Failed to flush postfix queue: %s", out)
	}
	return out, nil
}

// Probe verifies the queue tooling answers a status query.
func Probe() error {
	return core.ProbeTool("postqueue", []string{"-p"}, "")
}

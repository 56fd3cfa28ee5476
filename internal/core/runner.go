package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner abstracts process execution so adapters can be tested without
// touching the host system.
type Runner interface {
	Run(cmd *exec.Cmd) error
}

// RealRunner executes commands on the real system.
type RealRunner struct{}

func (r *RealRunner) Run(cmd *exec.Cmd) error {
	return cmd.Run()
}

// CommandRunner is the process executor used by all adapters.
// Tests swap it for a mock.
var CommandRunner Runner = &RealRunner{}

// ProcResult captures the outcome of one external tool invocation: the
// command line, both output streams and the exit status. It is consumed
// immediately by the calling step and never retained.
type ProcResult struct {
	Cmd      string
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCommand executes name with args and captures stdout and stderr
// separately. A non-zero exit status is reported through ProcResult, not as
// an error; err is non-nil only if the process could not be run at all
// (e.g. binary not found).
func RunCommand(name string, args ...string) (ProcResult, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := CommandRunner.Run(cmd)
	res := ProcResult{
		Cmd:    strings.Join(cmd.Args, " "),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("exec %s: %w", name, err)
	}
	return res, nil
}

// CheckProc enforces the shared exit-status contract: exit 0 succeeds
// (echoing non-empty stdout to w), anything else becomes an Operation error
// combining errMsg with the tool's captured error output.
func CheckProc(w io.Writer, res ProcResult, errMsg string) error {
	if res.ExitCode == 0 {
		if out := strings.TrimSpace(res.Stdout); out != "" && w != nil {
			fmt.Fprintln(w, out)
		}
		return nil
	}

	detail := strings.TrimSpace(res.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(res.Stdout)
	}
	if detail == "" {
		detail = fmt.Sprintf("exit status %d", res.ExitCode)
	}
	return OperationErr(res.Cmd, "%s: %s", errMsg, detail)
}

// IsCommandAvailable reports whether a binary can be found in PATH.
func IsCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

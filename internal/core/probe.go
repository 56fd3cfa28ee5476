package core

import "strings"

// ProbeTool runs an external tool and verifies that its output contains the
// expected substring. Validation uses this to confirm every dependency is
// present and compatible before anything destructive happens.
func ProbeTool(name string, args []string, want string) error {
	res, err := RunCommand(name, args...)
	if err != nil {
		return EnvironmentErr("missing or incompatible dependency %s: %v", name, err)
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(res.Stdout)
		}
		return EnvironmentErr("dependency check '%s' exited %d: %s", res.Cmd, res.ExitCode, detail)
	}
	if want != "" && !strings.Contains(res.Stdout, want) {
		return EnvironmentErr("output from '%s' (%s) did not match expected %q", res.Cmd, strings.TrimSpace(res.Stdout), want)
	}
	return nil
}

package service

import (
	"fmt"
	"strings"

	"github.com/mailsnap/mailsnap/internal/core"
)

// SystemdManager drives units through systemctl.
type SystemdManager struct{}

func NewSystemdManager() *SystemdManager {
	return &SystemdManager{}
}

func (s *SystemdManager) Name() string {
	return "systemd"
}

func (s *SystemdManager) Start(unit string) error {
	return s.run("start", unit)
}

func (s *SystemdManager) Stop(unit string) error {
	return s.run("stop", unit)
}

func (s *SystemdManager) State(unit string) (UnitState, error) {
	res, err := core.RunCommand("systemctl", "show", unit, "--property=ActiveState,SubState", "--no-pager")
	if err != nil {
		return UnitState{}, err
	}
	if res.ExitCode != 0 {
		return UnitState{}, fmt.Errorf("systemctl show %s failed: %s", unit, strings.TrimSpace(res.Stderr))
	}
	return parseShowOutput(res.Stdout), nil
}

// parseShowOutput reads the Key=Value lines printed by systemctl show.
func parseShowOutput(out string) UnitState {
	var st UnitState
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "ActiveState":
			st.ActiveState = val
		case "SubState":
			st.SubState = val
		}
	}
	return st
}

func (s *SystemdManager) run(args ...string) error {
	res, err := core.RunCommand("systemctl", args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", res.ExitCode)
		}
		return fmt.Errorf("systemctl %s failed: %s", strings.Join(args, " "), detail)
	}
	return nil
}

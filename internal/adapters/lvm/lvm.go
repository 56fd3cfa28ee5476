package lvm

import (
	"fmt"
	"io"
	"strings"

	"github.com/mailsnap/mailsnap/internal/core"
)

// Manager wraps the LVM2 userspace tools (lvs, lvcreate, lvremove).
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// ListVolumes returns the fully qualified (vg/lv) names of all logical
// volumes known to the volume manager.
func (m *Manager) ListVolumes() ([]string, error) {
	res, err := core.RunCommand("lvs", "--options", "lv_full_name", "--noheadings")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, core.EnvironmentErr("lvs failed: %s", strings.TrimSpace(res.Stderr))
	}

	var volumes []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			volumes = append(volumes, name)
		}
	}
	return volumes, nil
}

// VolumeExists reports whether the fully qualified vg/lv name is present in
// the volume listing.
func (m *Manager) VolumeExists(fullName string) (bool, error) {
	volumes, err := m.ListVolumes()
	if err != nil {
		return false, err
	}
	for _, v := range volumes {
		if v == fullName {
			return true, nil
		}
	}
	return false, nil
}

// CreateSnapshot carves a copy-on-write snapshot named snapName with the
// given capacity out of /dev/<vg>/<source>.
func (m *Manager) CreateSnapshot(w io.Writer, vg, source, snapName, size string) error {
	res, err := core.RunCommand("lvcreate",
		"--snapshot", "--name", snapName, "--size", size,
		fmt.Sprintf("/dev/%s/%s", vg, source))
	if err != nil {
		return err
	}
	return core.CheckProc(w, res, "Failed to create snapshot")
}

// Remove deletes the fully qualified vg/lv volume without prompting.
func (m *Manager) Remove(w io.Writer, fullName string) error {
	res, err := core.RunCommand("lvremove", "--yes", "/dev/"+fullName)
	if err != nil {
		return err
	}
	return core.CheckProc(w, res, fmt.Sprintf("Failed to remove logical volume %s", fullName))
}

// Probe verifies the LVM2 create/remove tools are present and compatible.
func (m *Manager) Probe() error {
	if err := core.ProbeTool("lvcreate", []string{"--version"}, "LVM version"); err != nil {
		return err
	}
	return core.ProbeTool("lvremove", []string{"--version"}, "LVM version")
}

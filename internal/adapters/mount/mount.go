package mount

import (
	"fmt"
	"io"
	"strings"

	"github.com/mailsnap/mailsnap/internal/core"
)

// Mount attaches a block device at dir. With readOnly the snapshot is
// mounted -o ro, the only mode the backup ever needs.
func Mount(w io.Writer, device, dir string, readOnly bool) error {
	args := []string{device, dir}
	if readOnly {
		args = append(args, "-o", "ro")
	}
	res, err := core.RunCommand("mount", args...)
	if err != nil {
		return err
	}
	return core.CheckProc(w, res, "Failed to mount snapshot")
}

// Unmount detaches whatever is mounted at dir.
func Unmount(w io.Writer, dir string) error {
	res, err := core.RunCommand("umount", dir)
	if err != nil {
		return err
	}
	return core.CheckProc(w, res, fmt.Sprintf("Failed to unmount %s", dir))
}

// IsMounted reports whether dir appears as an active mount point in the
// mount table.
func IsMounted(dir string) (bool, error) {
	res, err := core.RunCommand("mount")
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		return false, core.EnvironmentErr("mount listing failed: %s", strings.TrimSpace(res.Stderr))
	}
	return strings.Contains(res.Stdout, fmt.Sprintf("on %s ", dir)), nil
}

// Probe verifies mount and umount are the util-linux implementations.
func Probe() error {
	if err := core.ProbeTool("mount", []string{"--version"}, "util-linux"); err != nil {
		return err
	}
	return core.ProbeTool("umount", []string{"--version"}, "util-linux")
}

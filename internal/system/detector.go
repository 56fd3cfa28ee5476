package system

import (
	"os"
	"runtime"
	"strings"

	"github.com/mailsnap/mailsnap/internal/core"
)

// Detect analyzes the local host and fills the SystemContext. The facts it
// gathers feed hook `when:` conditions and the init-system precondition.
func Detect(ctx *core.SystemContext) {
	ctx.OS = runtime.GOOS

	if hostname, err := os.Hostname(); err == nil {
		ctx.Hostname = hostname
	}

	ctx.InitSystem = detectInitSystem()
	ctx.Kernel = detectKernel()

	if home, err := os.UserHomeDir(); err == nil {
		ctx.HomeDir = home
	}
}

func detectInitSystem() string {
	// 1. Check PID 1 (most reliable)
	if comm, err := os.ReadFile("/proc/1/comm"); err == nil {
		if strings.TrimSpace(string(comm)) == "systemd" {
			return "systemd"
		}
	}

	// 2. /run/systemd/system is the standard marker for a systemd boot
	if _, err := os.Stat("/run/systemd/system"); err == nil {
		return "systemd"
	}

	// 3. OpenRC
	if _, err := os.Stat("/run/openrc"); err == nil {
		return "openrc"
	}

	// 4. SysVinit fallback
	if _, err := os.Stat("/etc/init.d"); err == nil {
		return "sysvinit"
	}

	return "unknown"
}

func detectKernel() string {
	res, err := core.RunCommand("uname", "-r")
	if err != nil || res.ExitCode != 0 {
		return "unknown"
	}
	return strings.TrimSpace(res.Stdout)
}

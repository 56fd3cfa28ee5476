package core

import (
	"context"
	"io"
	"os"
)

// SystemContext carries the runtime context of a run. It wraps the standard
// Go context and adds the host facts that hook conditions and validation
// care about.
type SystemContext struct {
	context.Context `yaml:"-"`

	OS         string `yaml:"os"`          // runtime.GOOS (linux, darwin)
	Kernel     string `yaml:"kernel"`      // e.g. 6.6.7-arch1-1
	InitSystem string `yaml:"init_system"` // systemd, openrc, sysvinit
	Hostname   string `yaml:"hostname"`

	User    string `yaml:"user"`
	HomeDir string `yaml:"home_dir"`

	// DryRun: when true nothing is changed, the run is only simulated.
	DryRun bool `yaml:"-"`

	Stdout io.Writer `yaml:"-"`
	Stderr io.Writer `yaml:"-"`
}

func NewSystemContext(dryRun bool) *SystemContext {
	return &SystemContext{
		Context:    context.Background(),
		OS:         "unknown",
		InitSystem: "unknown",
		User:       os.Getenv("USER"),
		HomeDir:    os.Getenv("HOME"),
		DryRun:     dryRun,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

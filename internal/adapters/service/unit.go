package service

import (
	"fmt"
	"io"

	"github.com/mailsnap/mailsnap/internal/core"
)

// UnitHandle is a live reference to one service unit, held for the duration
// of a run. Its release action is EnsureStarted: whoever acquires a handle
// must defer it, so the unit receives at least one start command before the
// process ends no matter how the run went.
type UnitHandle struct {
	Unit string
	mgr  Manager
}

// Acquire resolves the manager for the detected init system and returns a
// handle for the named unit. Only systemd hosts are supported.
func Acquire(ctx *core.SystemContext, unit string) (*UnitHandle, error) {
	if ctx.InitSystem != "systemd" {
		return nil, core.EnvironmentErr("init system %q is not supported, systemd is required", ctx.InitSystem)
	}
	return &UnitHandle{Unit: unit, mgr: NewSystemdManager()}, nil
}

// NewHandle wraps an explicit manager. Used by tests and by callers that
// already resolved one.
func NewHandle(mgr Manager, unit string) *UnitHandle {
	return &UnitHandle{Unit: unit, mgr: mgr}
}

func (h *UnitHandle) Start() error {
	return h.mgr.Start(h.Unit)
}

func (h *UnitHandle) Stop() error {
	return h.mgr.Stop(h.Unit)
}

func (h *UnitHandle) State() (UnitState, error) {
	return h.mgr.State(h.Unit)
}

// EnsureStarted issues one more start command, best-effort. A no-op if the
// unit is already running; a safety net if it is not.
func (h *UnitHandle) EnsureStarted(w io.Writer) {
	if h == nil {
		return
	}
	if err := h.mgr.Start(h.Unit); err != nil && w != nil {
		fmt.Fprintf(w, "warning: final start of %s failed: %v\n", h.Unit, err)
	}
}

package backup

import (
	"fmt"
	"time"

	"github.com/mailsnap/mailsnap/internal/adapters/lvm"
	"github.com/mailsnap/mailsnap/internal/adapters/service"
	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
	"github.com/mailsnap/mailsnap/internal/notify"
	"github.com/mailsnap/mailsnap/internal/state"
)

// Orchestrator drives one backup run as a single linear pipeline: validate
// preconditions, stop the mail service, snapshot, restart, mount, replicate,
// clean up, verify, flush the queue, notify. Any step failure short-circuits
// to a single failure handler; the service handle is released through an
// unconditional ensure-started.
type Orchestrator struct {
	ctx   *core.SystemContext
	cfg   *config.Config
	req   Request
	names Names

	lvm      *lvm.Manager
	handle   *service.UnitHandle
	notifier notify.Notifier
	history  *state.HistoryManager

	// readOnly validation reports problems without clearing them; used by
	// the check command so a preflight never mutates the host.
	readOnly bool

	// test seam; defaults to time.Sleep
	sleep func(time.Duration)
}

// SetReadOnly switches validation into report-only mode.
func (o *Orchestrator) SetReadOnly(ro bool) {
	o.readOnly = ro
}

func New(ctx *core.SystemContext, cfg *config.Config, req Request) *Orchestrator {
	return &Orchestrator{
		ctx:      ctx,
		cfg:      cfg,
		req:      req,
		names:    DeriveNames(req, cfg.MountBase),
		lvm:      lvm.NewManager(),
		notifier: notify.NewSyslog(), // replaced by push mode once credentials load
		history:  state.NewHistoryManager(""),
		sleep:    time.Sleep,
	}
}

// Names exposes the derived identifiers of this run.
func (o *Orchestrator) Names() Names {
	return o.names
}

// Run performs the backup or fails with a diagnosable error. On any failure
// it emits a failure notification and best-effort restarts the mail service
// before propagating the error to the caller.
func (o *Orchestrator) Run() (err error) {
	// Hail-Mary attempt to ensure the mail service is (re)started, no
	// matter what. A no-op if it is running already.
	defer func() {
		o.handle.EnsureStarted(o.ctx.Stderr)
	}()

	// Single top-level failure handler: render, notify, record, re-raise.
	defer func() {
		if err == nil {
			return
		}
		o.record("failed", err.Error())
		if nerr := o.notifier.Notify(o.ctx, fmt.Sprintf("mail backup of %s failed: %v", o.names.SourceLV, err)); nerr != nil {
			fmt.Fprintf(o.ctx.Stderr, "warning: failure notification not delivered: %v\n", nerr)
		}
	}()

	if err = o.req.Validate(); err != nil {
		return core.ConfigurationErr("%v", err)
	}

	if o.ctx.DryRun {
		for _, line := range o.Plan() {
			fmt.Fprintf(o.ctx.Stdout, "🔍 [DryRun] %s\n", line)
		}
		return nil
	}

	if err = o.runHooks(o.cfg.Hooks.Pre, "pre"); err != nil {
		return err
	}
	if err = o.Validate(); err != nil {
		return err
	}
	if err = o.sequence(); err != nil {
		return err
	}
	if err = o.runHooks(o.cfg.Hooks.Post, "post"); err != nil {
		return err
	}

	o.record("success", "backup completed")
	return nil
}

// Plan lists the steps a run would perform, for dry-run and check output.
func (o *Orchestrator) Plan() []string {
	n := o.names
	return []string{
		fmt.Sprintf("validate: volume %s, tools, mount point %s, leftover %s, credentials", n.SourceLV, n.MountPoint, n.SnapshotLV),
		fmt.Sprintf("stop %s and wait %s for it to settle", o.cfg.Service, o.cfg.SettleDuration()),
		fmt.Sprintf("lvcreate --snapshot --name %s --size %s /dev/%s", n.SnapshotName, o.cfg.SnapshotSize, n.SourceLV),
		fmt.Sprintf("start %s", o.cfg.Service),
		fmt.Sprintf("mount /dev/%s %s -o ro", n.SnapshotLV, n.MountPoint),
		fmt.Sprintf("rsync %s to %s:%s", n.MountPoint, o.req.RsyncHost, o.req.LVName),
		fmt.Sprintf("umount %s, lvremove /dev/%s, rmdir %s", n.MountPoint, n.SnapshotLV, n.MountPoint),
		fmt.Sprintf("verify %s is active/running", o.cfg.Service),
		"postqueue -f (non-fatal)",
		"send success notification",
	}
}

func (o *Orchestrator) stepOK(name, msg string) {
	fmt.Fprintf(o.ctx.Stdout, "✅ [%s] %s\n", name, msg)
}

func (o *Orchestrator) record(status, message string) {
	if o.history == nil {
		return
	}
	rec := state.RunRecord{
		ID:        state.GenerateID(),
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    status,
		Volume:    o.names.SourceLV,
		Host:      o.req.RsyncHost,
		Message:   message,
	}
	if err := o.history.AddRecord(rec); err != nil {
		fmt.Fprintf(o.ctx.Stderr, "warning: failed to record run history: %v\n", err)
	}
}

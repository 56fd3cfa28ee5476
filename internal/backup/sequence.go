package backup

import (
	"fmt"
	"os"

	"github.com/mailsnap/mailsnap/internal/adapters/mount"
	"github.com/mailsnap/mailsnap/internal/adapters/postfix"
	"github.com/mailsnap/mailsnap/internal/adapters/rsync"
	"github.com/mailsnap/mailsnap/internal/adapters/service"
	"github.com/mailsnap/mailsnap/internal/core"
)

// sequence is the main backup pipeline. Each step's failure short-circuits;
// the caller owns the failure handler and the ensure-started cleanup.
func (o *Orchestrator) sequence() error {
	n := o.names

	// 1. Stop the mail service and wait for it to settle.
	handle, err := service.Acquire(o.ctx, o.cfg.Service)
	if err != nil {
		return err
	}
	o.handle = handle

	if err := handle.Stop(); err != nil {
		return core.OperationErr("stop-service", "failed to stop %s: %v", o.cfg.Service, err)
	}
	o.sleep(o.cfg.SettleDuration())

	st, err := handle.State()
	if err != nil {
		return core.OperationErr("stop-service", "cannot query state of %s: %v", o.cfg.Service, err)
	}
	if !st.Dead() {
		return core.OperationErr("stop-service", "failed to stop %s: unit is in state %s", o.cfg.Service, st.SubState)
	}
	o.stepOK("stop-service", fmt.Sprintf("%s is down", o.cfg.Service))

	// 2. Create the snapshot.
	if err := o.lvm.CreateSnapshot(o.ctx.Stdout, o.req.VGName, o.req.LVName, n.SnapshotName, o.cfg.SnapshotSize); err != nil {
		return err
	}
	o.stepOK("create-snapshot", fmt.Sprintf("snapshot %s created (%s)", n.SnapshotLV, o.cfg.SnapshotSize))

	// 3. Restart the mail service. Does not block on readiness here; health
	// is verified after replication.
	if err := handle.Start(); err != nil {
		return core.OperationErr("restart-service", "failed to restart %s: %v", o.cfg.Service, err)
	}
	o.stepOK("restart-service", fmt.Sprintf("%s starting", o.cfg.Service))

	// 4. Mount the snapshot read-only.
	if err := mount.Mount(o.ctx.Stdout, "/dev/"+n.SnapshotLV, n.MountPoint, true); err != nil {
		return err
	}
	o.stepOK("mount-snapshot", fmt.Sprintf("%s mounted at %s", n.SnapshotLV, n.MountPoint))

	// 5. Replicate to the backup host.
	if err := rsync.Sync(n.MountPoint, o.req.RsyncHost, o.req.LVName); err != nil {
		return err
	}
	o.stepOK("replicate", fmt.Sprintf("synced to %s:%s", o.req.RsyncHost, o.req.LVName))

	// 6-8. Unmount, remove snapshot, remove mount point.
	if err := mount.Unmount(o.ctx.Stdout, n.MountPoint); err != nil {
		return err
	}
	if err := o.lvm.Remove(o.ctx.Stdout, n.SnapshotLV); err != nil {
		return err
	}
	if err := os.Remove(n.MountPoint); err != nil {
		return core.OperationErr("remove-mountpoint", "failed to remove mountpoint directory %s: %v", n.MountPoint, err)
	}
	o.stepOK("cleanup", fmt.Sprintf("%s unmounted and removed", n.SnapshotLV))

	// 9. Verify the mail service came back healthy.
	st, err = handle.State()
	if err != nil {
		return core.HealthCheckErr("cannot query state of %s: %v", o.cfg.Service, err)
	}
	if !st.Running() {
		return core.HealthCheckErr("%s may be down after backup: ActiveState %s SubState %s",
			o.cfg.Service, st.ActiveState, st.SubState)
	}
	o.stepOK("verify-service", fmt.Sprintf("%s is active and running", o.cfg.Service))

	// 10. Flush the mail queue. A failure here is reported but never aborts
	// the run.
	if out, err := postfix.Flush(); err != nil {
		msg := fmt.Sprintf("Failed to flush postfix queue: %s", out)
		fmt.Fprintf(o.ctx.Stderr, "⚠️  [flush-queue] %s\n", msg)
		if nerr := o.notifier.Notify(o.ctx, msg); nerr != nil {
			fmt.Fprintf(o.ctx.Stderr, "warning: flush-failure notification not delivered: %v\n", nerr)
		}
	} else {
		o.stepOK("flush-queue", "postfix queue flushed")
	}

	// 11. Success notification. A delivery failure here propagates: the
	// backup data is safe but the operator asked to be told.
	if err := o.notifier.Notify(o.ctx, fmt.Sprintf("Successfully backed up mail volume %s", n.SourceLV)); err != nil {
		return err
	}
	o.stepOK("notify", "success notification sent via "+o.notifier.Name())

	return nil
}

package backup

import (
	"fmt"
	"os"

	"github.com/mailsnap/mailsnap/internal/adapters/mount"
	"github.com/mailsnap/mailsnap/internal/adapters/postfix"
	"github.com/mailsnap/mailsnap/internal/adapters/rsync"
	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
	"github.com/mailsnap/mailsnap/internal/notify"
	"github.com/mailsnap/mailsnap/internal/transport"
)

// Validate checks every precondition before any destructive action: the
// source volume exists, every external tool answers its version probe, the
// mount point and the snapshot name are free (or freed under --force), the
// credentials file parses, and the rsync target is reachable if a remote
// preflight is configured.
func (o *Orchestrator) Validate() error {
	if o.ctx.InitSystem != "systemd" {
		return core.EnvironmentErr("init system %q is not supported, systemd is required", o.ctx.InitSystem)
	}

	// 1. Source volume must exist.
	exists, err := o.lvm.VolumeExists(o.names.SourceLV)
	if err != nil {
		return err
	}
	if !exists {
		return core.ConfigurationErr("volume not found: LVM volume %s is not in the lvs listing", o.names.SourceLV)
	}

	// 2. Tool probes.
	if err := rsync.Probe(); err != nil {
		return err
	}
	if err := o.lvm.Probe(); err != nil {
		return err
	}
	if err := mount.Probe(); err != nil {
		return err
	}
	if err := postfix.Probe(); err != nil {
		return err
	}

	// 3. Mount point.
	if err := o.prepareMountPoint(); err != nil {
		return err
	}

	// 4. Leftover snapshot volume.
	if err := o.clearLeftoverSnapshot(); err != nil {
		return err
	}

	// 5. Credentials, switching the notifier to push mode.
	if o.req.PushoverPath != "" {
		creds, err := config.LoadPushoverCredentials(o.req.PushoverPath)
		if err != nil {
			return err
		}
		o.notifier = notify.Select(creds)
	}

	// 6. Optional remote preflight.
	if o.cfg.Remote != nil {
		if err := transport.CheckRemote(o.ctx, *o.cfg.Remote); err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) prepareMountPoint() error {
	mp := o.names.MountPoint

	if _, err := os.Stat(mp); os.IsNotExist(err) {
		if o.readOnly {
			fmt.Fprintf(o.ctx.Stdout, "ℹ️  [check] mount point %s would be created\n", mp)
			return nil
		}
		if mkErr := os.Mkdir(mp, 0755); mkErr != nil {
			return core.EnvironmentErr("cannot create mount point %s: %v", mp, mkErr)
		}
		return nil
	}

	if !o.req.Force {
		return core.ConflictErr("mount point %s already exists", mp)
	}

	mounted, err := mount.IsMounted(mp)
	if err != nil {
		return err
	}
	if !mounted {
		return nil
	}
	if o.readOnly {
		fmt.Fprintf(o.ctx.Stdout, "ℹ️  [check] %s is mounted and would be force-unmounted\n", mp)
		return nil
	}

	if err := mount.Unmount(o.ctx.Stdout, mp); err != nil {
		return err
	}
	mounted, err = mount.IsMounted(mp)
	if err != nil {
		return err
	}
	if mounted {
		return core.ConflictErr("unable to unmount %s", mp)
	}
	return nil
}

func (o *Orchestrator) clearLeftoverSnapshot() error {
	exists, err := o.lvm.VolumeExists(o.names.SnapshotLV)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if !o.req.Force {
		return core.ConflictErr("backup volume already present (%s)", o.names.SnapshotLV)
	}
	if o.readOnly {
		fmt.Fprintf(o.ctx.Stdout, "ℹ️  [check] leftover snapshot %s would be force-removed\n", o.names.SnapshotLV)
		return nil
	}

	if err := o.lvm.Remove(o.ctx.Stdout, o.names.SnapshotLV); err != nil {
		return err
	}
	fmt.Fprintf(o.ctx.Stdout, "✅ [force] removed leftover snapshot %s\n", o.names.SnapshotLV)
	return nil
}

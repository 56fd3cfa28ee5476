package backup

import "fmt"

// Request is the immutable input of one backup run, supplied once at
// invocation.
type Request struct {
	VGName       string // containing volume group
	LVName       string // logical volume holding the mail store
	RsyncHost    string // replication target host
	PushoverPath string // optional credentials file enabling push alerts
	Force        bool   // clear leftover mount point / snapshot from a prior run
}

// Names are pure functions of the request, computed once and held for the
// duration of the run.
type Names struct {
	MountPoint   string // <mount base>/<lv>_bkup
	SnapshotName string // <lv>_bkup
	SourceLV     string // vg/lv
	SnapshotLV   string // vg/<lv>_bkup
}

func DeriveNames(req Request, mountBase string) Names {
	snapName := req.LVName + "_bkup"
	return Names{
		MountPoint:   fmt.Sprintf("%s/%s", mountBase, snapName),
		SnapshotName: snapName,
		SourceLV:     fmt.Sprintf("%s/%s", req.VGName, req.LVName),
		SnapshotLV:   fmt.Sprintf("%s/%s", req.VGName, snapName),
	}
}

// Validate rejects requests missing a required parameter.
func (r Request) Validate() error {
	if r.LVName == "" || r.VGName == "" || r.RsyncHost == "" {
		return fmt.Errorf("lv-name, vg-name and rsync-host are required")
	}
	return nil
}

package rsync

import (
	"fmt"

	"github.com/mailsnap/mailsnap/internal/core"
)

// replicationArgs are the fixed flags for the mail-store copy: recursive,
// metadata preserving (numeric ids, hard links, sparse layout), relative
// path semantics, confined to one filesystem, deleting remote entries that
// are gone locally, over ssh with fake-super so a non-root remote account
// can store ownership.
var replicationArgs = []string{
	"--archive",
	"--relative",
	"--sparse",
	"--hard-links",
	"--one-file-system",
	"--delete",
	"--numeric-ids",
	"--rsh=ssh",
	"--fake-super",
}

// Sync replicates the tree rooted at src to host:dest.
func Sync(src, host, dest string) error {
	args := append(append([]string{}, replicationArgs...), src, fmt.Sprintf("%s:%s", host, dest))
	res, err := core.RunCommand("rsync", args...)
	if err != nil {
		return err
	}
	// rsync progress chatter is not worth echoing, only failures matter.
	return core.CheckProc(nil, res, "Failed to rsync to backup host")
}

// Probe verifies rsync is present and speaks a protocol version.
func Probe() error {
	return core.ProbeTool("rsync", []string{"--version"}, "protocol version")
}

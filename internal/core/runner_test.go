package core

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
)

// MockRunner is a mock implementation of the Runner interface.
type MockRunner struct {
	RunFunc func(cmd *exec.Cmd) error
}

func (m *MockRunner) Run(cmd *exec.Cmd) error {
	if m.RunFunc != nil {
		return m.RunFunc(cmd)
	}
	return nil
}

// exitStatusErr produces a genuine *exec.ExitError with the given code, the
// only way to build one is to run a process that exits with it.
func exitStatusErr(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	if err == nil {
		t.Fatalf("expected exit error for code %d", code)
	}
	return err
}

func TestRunCommand_CapturesStreams(t *testing.T) {
	defer func() { CommandRunner = &RealRunner{} }()

	CommandRunner = &MockRunner{
		RunFunc: func(cmd *exec.Cmd) error {
			fmt.Fprint(cmd.Stdout, "volume list\n")
			fmt.Fprint(cmd.Stderr, "some warning\n")
			return nil
		},
	}

	res, err := RunCommand("lvs", "--noheadings")
	if err != nil {
		t.Fatalf("RunCommand returned error: %v", err)
	}
	if res.Cmd != "lvs --noheadings" {
		t.Errorf("Cmd = %q, want %q", res.Cmd, "lvs --noheadings")
	}
	if res.Stdout != "volume list\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if res.Stderr != "some warning\n" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestRunCommand_NonZeroExit(t *testing.T) {
	defer func() { CommandRunner = &RealRunner{} }()

	exitErr := exitStatusErr(t, 3)
	CommandRunner = &MockRunner{
		RunFunc: func(cmd *exec.Cmd) error {
			fmt.Fprint(cmd.Stderr, "device not found")
			return exitErr
		},
	}

	res, err := RunCommand("lvremove", "--yes", "/dev/vg0/mail_bkup")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Stderr != "device not found" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestRunCommand_StartFailure(t *testing.T) {
	defer func() { CommandRunner = &RealRunner{} }()

	CommandRunner = &MockRunner{
		RunFunc: func(cmd *exec.Cmd) error {
			return errors.New("executable file not found in $PATH")
		},
	}

	res, err := RunCommand("no-such-tool")
	if err == nil {
		t.Fatal("expected error when the process cannot start")
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
}

func TestCheckProc(t *testing.T) {
	tests := []struct {
		name       string
		res        ProcResult
		wantErr    bool
		wantDetail string
		wantEcho   string
	}{
		{
			name:     "exit 0 echoes stdout",
			res:      ProcResult{Cmd: "lvcreate", Stdout: "  Logical volume created.\n", ExitCode: 0},
			wantEcho: "Logical volume created.\n",
		},
		{
			name: "exit 0 empty stdout stays silent",
			res:  ProcResult{Cmd: "umount", ExitCode: 0},
		},
		{
			name:       "non-zero prefers stderr",
			res:        ProcResult{Cmd: "lvcreate", Stdout: "partial", Stderr: "no free space", ExitCode: 5},
			wantErr:    true,
			wantDetail: "no free space",
		},
		{
			name:       "non-zero falls back to stdout",
			res:        ProcResult{Cmd: "mount", Stdout: "already mounted", ExitCode: 32},
			wantErr:    true,
			wantDetail: "already mounted",
		},
		{
			name:       "non-zero without output reports exit status",
			res:        ProcResult{Cmd: "rsync", ExitCode: 23},
			wantErr:    true,
			wantDetail: "exit status 23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := CheckProc(&buf, tt.res, "step failed")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !IsKind(err, KindOperation) {
					t.Errorf("error kind = %v, want operation", err)
				}
				if !strings.Contains(err.Error(), tt.wantDetail) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantDetail)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.wantEcho {
				t.Errorf("echoed %q, want %q", buf.String(), tt.wantEcho)
			}
		})
	}
}

func TestCheckProc_NilWriter(t *testing.T) {
	err := CheckProc(nil, ProcResult{Cmd: "rsync", Stdout: "chatter", ExitCode: 0}, "unused")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

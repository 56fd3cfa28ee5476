package postfix

import (
	"fmt"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/mailsnap/mailsnap/internal/core"
)

type mockRunner struct {
	run func(cmd *exec.Cmd) error
}

func (m *mockRunner) Run(cmd *exec.Cmd) error {
	return m.run(cmd)
}

func TestFlush(t *testing.T) {
	defer func() { core.CommandRunner = &core.RealRunner{} }()

	var gotArgs []string
	core.CommandRunner = &mockRunner{
		run: func(cmd *exec.Cmd) error {
			gotArgs = cmd.Args
			return nil
		},
	}

	out, err := Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if out != "" {
		t.Errorf("unexpected output: %q", out)
	}

	want := []string{"postqueue", "-f"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Errorf("argv = %v, want %v", gotArgs, want)
	}
}

func TestFlush_Failure(t *testing.T) {
	defer func() { core.CommandRunner = &core.RealRunner{} }()

	exitErr := exec.Command("sh", "-c", "exit 1").Run()
	if exitErr == nil {
		t.Fatal("expected exit error")
	}

	core.CommandRunner = &mockRunner{
		run: func(cmd *exec.Cmd) error {
			fmt.Fprint(cmd.Stderr, "postqueue: fatal: Cannot flush mail queue - mail system is down")
			return exitErr
		},
	}

	out, err := Flush()
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsKind(err, core.KindOperation) {
		t.Errorf("error kind = %v, want operation", err)
	}
	if !strings.Contains(out, "mail system is down") {
		t.Errorf("output should carry the tool diagnostics: %q", out)
	}
}

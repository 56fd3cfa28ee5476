package backup

import (
	"strings"
	"testing"

	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
)

func TestRunHooks(t *testing.T) {
	t.Run("hook command runs through the shell", func(t *testing.T) {
		h := newHarness(t)
		o, _ := newTestOrchestrator(t, h, Request{VGName: "vg0", LVName: "mail", RsyncHost: "backup01"})

		hooks := []config.Hook{{Name: "quiesce", Command: "sync && echo quiesced"}}
		if err := o.runHooks(hooks, "pre"); err != nil {
			t.Fatalf("runHooks failed: %v", err)
		}

		if h.callIndex("sh -c sync && echo quiesced") != 0 {
			t.Errorf("hook command not executed: %v", h.calls)
		}
		if !strings.Contains(stdoutOf(o), "[hook:pre:quiesce]") {
			t.Errorf("missing hook status line: %q", stdoutOf(o))
		}
	})

	t.Run("unmet when condition skips the hook", func(t *testing.T) {
		h := newHarness(t)
		o, _ := newTestOrchestrator(t, h, Request{VGName: "vg0", LVName: "mail", RsyncHost: "backup01"})

		hooks := []config.Hook{{Name: "other-host-only", Command: "echo hi", When: `Hostname == "mail02"`}}
		if err := o.runHooks(hooks, "pre"); err != nil {
			t.Fatalf("runHooks failed: %v", err)
		}

		if len(h.calls) != 0 {
			t.Errorf("skipped hook still executed: %v", h.calls)
		}
		if !strings.Contains(stdoutOf(o), "skipped") {
			t.Errorf("missing skip line: %q", stdoutOf(o))
		}
	})

	t.Run("met when condition runs the hook", func(t *testing.T) {
		h := newHarness(t)
		o, _ := newTestOrchestrator(t, h, Request{VGName: "vg0", LVName: "mail", RsyncHost: "backup01"})

		hooks := []config.Hook{{Command: "echo hi", When: `InitSystem == "systemd"`}}
		if err := o.runHooks(hooks, "post"); err != nil {
			t.Fatalf("runHooks failed: %v", err)
		}
		if h.callIndex("sh -c echo hi") != 0 {
			t.Errorf("gated hook did not run: %v", h.calls)
		}
	})

	t.Run("invalid when condition is a configuration error", func(t *testing.T) {
		h := newHarness(t)
		o, _ := newTestOrchestrator(t, h, Request{VGName: "vg0", LVName: "mail", RsyncHost: "backup01"})

		hooks := []config.Hook{{Command: "echo hi", When: "Hostname =="}}
		err := o.runHooks(hooks, "pre")
		if err == nil {
			t.Fatal("expected error")
		}
		if !core.IsKind(err, core.KindConfiguration) {
			t.Errorf("error kind = %v, want configuration", err)
		}
	})

	t.Run("failing hook aborts by default", func(t *testing.T) {
		h := newHarness(t)
		h.failArgs["sh -c exit 1"] = "boom"
		o, _ := newTestOrchestrator(t, h, Request{VGName: "vg0", LVName: "mail", RsyncHost: "backup01"})

		hooks := []config.Hook{{Name: "broken", Command: "exit 1"}}
		err := o.runHooks(hooks, "pre")
		if err == nil {
			t.Fatal("expected error")
		}
		if !core.IsKind(err, core.KindOperation) {
			t.Errorf("error kind = %v, want operation", err)
		}
	})

	t.Run("on_fail continue keeps going", func(t *testing.T) {
		h := newHarness(t)
		h.failArgs["sh -c exit 1"] = "boom"
		o, _ := newTestOrchestrator(t, h, Request{VGName: "vg0", LVName: "mail", RsyncHost: "backup01"})

		hooks := []config.Hook{
			{Name: "broken", Command: "exit 1", OnFail: "continue"},
			{Name: "next", Command: "echo next"},
		}
		if err := o.runHooks(hooks, "post"); err != nil {
			t.Fatalf("runHooks failed: %v", err)
		}

		if h.callIndex("sh -c echo next") < 0 {
			t.Errorf("hook after a continued failure did not run: %v", h.calls)
		}
		if !strings.Contains(stderrOf(o), "failed (continuing)") {
			t.Errorf("missing continue warning: %q", stderrOf(o))
		}
	})
}

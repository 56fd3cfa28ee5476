package backup

import (
	"fmt"
	"strings"

	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
)

// runHooks executes the configured lifecycle commands for one phase. A
// hook's `when:` condition is evaluated against the detected system context;
// unmet conditions skip the hook. Failures abort the run unless the hook is
// marked on_fail: continue.
func (o *Orchestrator) runHooks(hooks []config.Hook, phase string) error {
	for _, h := range hooks {
		name := h.Name
		if name == "" {
			name = h.Command
		}
		label := fmt.Sprintf("hook:%s:%s", phase, name)

		ok, err := core.EvaluateCondition(h.When, o.ctx)
		if err != nil {
			return core.ConfigurationErr("%s: %v", label, err)
		}
		if !ok {
			fmt.Fprintf(o.ctx.Stdout, "ℹ️  [%s] skipped (when not met)\n", label)
			continue
		}

		res, err := core.RunCommand("sh", "-c", h.Command)
		if err != nil || res.ExitCode != 0 {
			detail := strings.TrimSpace(res.Stderr)
			if err != nil {
				detail = err.Error()
			}
			if h.OnFail == "continue" {
				fmt.Fprintf(o.ctx.Stderr, "⚠️  [%s] failed (continuing): %s\n", label, detail)
				continue
			}
			return core.OperationErr(label, "hook command failed: %s", detail)
		}
		o.stepOK(label, "ok")
	}
	return nil
}

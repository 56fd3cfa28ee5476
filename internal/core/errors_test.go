package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain message",
			err:  ConfigurationErr("volume not found: %s", "vg0/mail"),
			want: "configuration error: volume not found: vg0/mail",
		},
		{
			name: "operation error carries the step",
			err:  OperationErr("stop-service", "failed to stop %s", "cyrus-imapd.service"),
			want: "operation error: [stop-service] failed to stop cyrus-imapd.service",
		},
		{
			name: "wrapped cause is appended",
			err:  NotificationErr(errors.New("connection refused"), "unable to send pushover notification"),
			want: "notification error: unable to send pushover notification: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := ConflictErr("mount point %s already exists", "/mnt/mail_bkup")

	if !IsKind(err, KindConflict) {
		t.Error("IsKind(conflict) = false")
	}
	if IsKind(err, KindOperation) {
		t.Error("IsKind(operation) = true for a conflict error")
	}

	// Matching must survive wrapping.
	wrapped := fmt.Errorf("run aborted: %w", err)
	if !IsKind(wrapped, KindConflict) {
		t.Error("IsKind did not unwrap")
	}

	if IsKind(errors.New("plain"), KindConflict) {
		t.Error("IsKind matched a non-Error")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NotificationErr(cause, "delivery failed")

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the wrapped cause")
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindConfiguration: "configuration",
		KindEnvironment:   "environment",
		KindConflict:      "conflict",
		KindOperation:     "operation",
		KindHealthCheck:   "healthcheck",
		KindNotification:  "notification",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if !strings.Contains(Kind(99).String(), "unknown") {
		t.Error("unknown kind should stringify as unknown")
	}
}

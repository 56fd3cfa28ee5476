package notify

import (
	"context"
	"log/syslog"

	"github.com/mailsnap/mailsnap/internal/core"
)

// Syslog writes alerts to the system mail-facility log at error severity.
// It is the fallback when no push credentials are configured.
type Syslog struct {
	tag string
}

func NewSyslog() *Syslog {
	return &Syslog{tag: "mailsnap"}
}

func (s *Syslog) Name() string {
	return "syslog"
}

func (s *Syslog) Notify(_ context.Context, message string) error {
	w, err := syslog.New(syslog.LOG_ERR|syslog.LOG_MAIL, s.tag)
	if err != nil {
		return core.NotificationErr(err, "syslog unavailable")
	}
	defer w.Close()

	if err := w.Err(message); err != nil {
		return core.NotificationErr(err, "syslog write failed")
	}
	return nil
}

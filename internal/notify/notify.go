package notify

import (
	"context"

	"github.com/mailsnap/mailsnap/internal/config"
)

// Notifier delivers a short text alert about the outcome of a run.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, message string) error
}

// Select picks the delivery mode: push when credentials were loaded, the
// system mail log otherwise. The two modes are mutually exclusive.
func Select(creds *config.PushoverCredentials) Notifier {
	if creds != nil {
		return NewPushover(creds)
	}
	return NewSyslog()
}

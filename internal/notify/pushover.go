package notify

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
)

// DefaultEndpoint is the Pushover message submission API.
const DefaultEndpoint = "https://api.pushover.net/1/messages.json"

// Pushover submits a small form payload (application token, user key,
// message text) to the push relay. Anything but HTTP 200 is a delivery
// failure.
type Pushover struct {
	Endpoint string

	token   string
	userKey string
	client  *http.Client
}

func NewPushover(creds *config.PushoverCredentials) *Pushover {
	return &Pushover{
		Endpoint: DefaultEndpoint,
		token:    creds.MailBackup.Token,
		userKey:  creds.UserKey,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *Pushover) Name() string {
	return "pushover"
}

func (p *Pushover) Notify(ctx context.Context, message string) error {
	form := url.Values{}
	form.Set("token", p.token)
	form.Set("user", p.userKey)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return core.NotificationErr(err, "unable to build pushover request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return core.NotificationErr(err, "unable to send pushover notification")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return core.NotificationErr(nil, "unable to send pushover notification: HTTP %d", resp.StatusCode)
	}
	return nil
}

package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mailsnap/mailsnap/internal/config"
	"github.com/mailsnap/mailsnap/internal/core"
)

func testCreds() *config.PushoverCredentials {
	creds := &config.PushoverCredentials{UserKey: "user-key-123"}
	creds.MailBackup.Token = "app-token-456"
	return creds
}

func TestPushover_Notify(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm failed: %v", err)
		}
		gotForm = map[string]string{
			"token":   r.PostFormValue("token"),
			"user":    r.PostFormValue("user"),
			"message": r.PostFormValue("message"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPushover(testCreds())
	p.Endpoint = srv.URL

	err := p.Notify(context.Background(), "Successfully backed up mail volume vg0/mail")
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if gotForm["token"] != "app-token-456" {
		t.Errorf("token = %q", gotForm["token"])
	}
	if gotForm["user"] != "user-key-123" {
		t.Errorf("user = %q", gotForm["user"])
	}
	if gotForm["message"] != "Successfully backed up mail volume vg0/mail" {
		t.Errorf("message = %q", gotForm["message"])
	}
}

func TestPushover_NotifyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewPushover(testCreds())
	p.Endpoint = srv.URL

	err := p.Notify(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error for HTTP 400")
	}
	if !core.IsKind(err, core.KindNotification) {
		t.Errorf("error kind = %v, want notification", err)
	}
}

func TestPushover_NotifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // reachable address, refused connection

	p := NewPushover(testCreds())
	p.Endpoint = srv.URL

	err := p.Notify(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	if !core.IsKind(err, core.KindNotification) {
		t.Errorf("error kind = %v, want notification", err)
	}
}

func TestSelect(t *testing.T) {
	if got := Select(nil).Name(); got != "syslog" {
		t.Errorf("Select(nil) = %q, want syslog", got)
	}
	if got := Select(testCreds()).Name(); got != "pushover" {
		t.Errorf("Select(creds) = %q, want pushover", got)
	}
}

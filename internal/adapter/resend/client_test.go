package resend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/comptlabs/waitlist/internal/domain"
)

func TestSendAppliesDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer re-key" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		var email Email
		if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if email.From != "hello@example.com" {
			t.Fatalf("default from not applied: %q", email.From)
		}
		if email.ReplyTo != "support@example.com" {
			t.Fatalf("default reply_to not applied: %q", email.ReplyTo)
		}
		fmt.Fprint(w, `{"id":"email_123"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "re-key", "hello@example.com", "support@example.com", time.Second)
	id, err := client.Send(context.Background(), Email{
		To:      []string{"user@example.com"},
		Subject: "hi",
		Text:    "hello",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if id != "email_123" {
		t.Fatalf("id = %q, want email_123", id)
	}
}

func TestSendUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"name":"validation_error","message":"The from address is not verified"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "re-key", "hello@example.com", "", time.Second)
	_, err := client.Send(context.Background(), Email{To: []string{"user@example.com"}, Subject: "hi"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if ue.Service != "resend" {
		t.Fatalf("service = %q", ue.Service)
	}
}

func TestConfigured(t *testing.T) {
	if NewClient("", "", "", "", time.Second).Configured() {
		t.Fatalf("blank client must report unconfigured")
	}
	if NewClient("", "key", "", "", time.Second).Configured() {
		t.Fatalf("client without from address must report unconfigured")
	}
	if !NewClient("", "key", "hello@example.com", "", time.Second).Configured() {
		t.Fatalf("complete client must report configured")
	}
}

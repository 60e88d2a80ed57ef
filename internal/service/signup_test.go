package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/comptlabs/waitlist/internal/adapter/airtable"
	"github.com/comptlabs/waitlist/internal/adapter/llm"
	"github.com/comptlabs/waitlist/internal/adapter/resend"
	"github.com/comptlabs/waitlist/internal/config"
	"github.com/comptlabs/waitlist/internal/domain"
)

func newTestService(airtableURL, resendURL, llmURL string) *Service {
	cfg := &config.Config{OpenAIModel: "gpt-4o-mini"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var airtableClient *airtable.Client
	if airtableURL != "" {
		airtableClient = airtable.NewClient(airtableURL, "key", "base", "Signups", time.Second)
	} else {
		airtableClient = airtable.NewClient("", "", "", "", time.Second)
	}
	emailClient := resend.NewClient(resendURL, "re-key", "hello@example.com", "", time.Second)
	llmClient := llm.NewClient(llmURL, "sk-test", time.Second)

	return New(cfg, airtableClient, emailClient, llmClient, logger)
}

// airtableFake serves the three calls the signup workflow makes.
func airtableFake(t *testing.T, existingEmail string, failCreate bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			if existingEmail != "" {
				fmt.Fprintf(w, `{"records":[{"id":"recDup","fields":{"Email":%q}}]}`, existingEmail)
				return
			}
			fmt.Fprint(w, `{"records":[]}`)
		case r.Method == http.MethodPost:
			if failCreate {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"error":{"type":"SERVER_ERROR","message":"boom"}}`)
				return
			}
			fmt.Fprint(w, `{"id":"recNew","fields":{}}`)
		case r.Method == http.MethodPatch:
			fmt.Fprint(w, `{"id":"recNew","fields":{}}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
}

func resendFake(fail bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, `{"name":"application_error","message":"delivery failed"}`)
			return
		}
		fmt.Fprint(w, `{"id":"email_ok"}`)
	}))
}

func TestSignupFullSuccess(t *testing.T) {
	at := airtableFake(t, "", false)
	defer at.Close()
	rs := resendFake(false)
	defer rs.Close()

	svc := newTestService(at.URL, rs.URL, "")
	result, err := svc.Signup(context.Background(), domain.SignupRequest{
		Email:        "new@example.com",
		IsBetaTester: true,
		FirstName:    "Sam",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if !result.FullSuccess() {
		t.Fatalf("expected full success: %+v", result)
	}
	if result.RecordID != "recNew" || result.EmailID != "email_ok" {
		t.Fatalf("unexpected ids: %+v", result)
	}
	if result.TemplateUsed != domain.TemplateBetaTester {
		t.Fatalf("templateUsed = %q, want beta", result.TemplateUsed)
	}
}

func TestSignupTemplateByFlag(t *testing.T) {
	at := airtableFake(t, "", false)
	defer at.Close()
	rs := resendFake(false)
	defer rs.Close()

	svc := newTestService(at.URL, rs.URL, "")
	result, err := svc.Signup(context.Background(), domain.SignupRequest{
		Email:        "regular@example.com",
		IsBetaTester: false,
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if result.TemplateUsed != domain.TemplateRegular {
		t.Fatalf("templateUsed = %q, want regular", result.TemplateUsed)
	}
}

func TestSignupDuplicateAbortsBeforeEmail(t *testing.T) {
	at := airtableFake(t, "dup@example.com", false)
	defer at.Close()

	emailCalled := false
	rs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		emailCalled = true
		fmt.Fprint(w, `{"id":"email_ok"}`)
	}))
	defer rs.Close()

	svc := newTestService(at.URL, rs.URL, "")
	_, err := svc.Signup(context.Background(), domain.SignupRequest{
		Email:        "dup@example.com",
		IsBetaTester: false,
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if emailCalled {
		t.Fatalf("no email may be sent for a duplicate signup")
	}
}

func TestSignupStoreFailureStillSendsEmail(t *testing.T) {
	at := airtableFake(t, "", true)
	defer at.Close()
	rs := resendFake(false)
	defer rs.Close()

	svc := newTestService(at.URL, rs.URL, "")
	result, err := svc.Signup(context.Background(), domain.SignupRequest{
		Email:        "user@example.com",
		IsBetaTester: false,
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if result.Airtable.Success {
		t.Fatalf("airtable step should have failed")
	}
	if !result.Email.Success {
		t.Fatalf("email must still be sent when bookkeeping fails: %+v", result)
	}
}

func TestSignupEmailFailureIsPartial(t *testing.T) {
	at := airtableFake(t, "", false)
	defer at.Close()
	rs := resendFake(true)
	defer rs.Close()

	svc := newTestService(at.URL, rs.URL, "")
	result, err := svc.Signup(context.Background(), domain.SignupRequest{
		Email:        "user@example.com",
		IsBetaTester: false,
	})
	if err != nil {
		t.Fatalf("Signup should not hard-fail on email failure: %v", err)
	}
	if !result.Partial() {
		t.Fatalf("expected partial outcome: %+v", result)
	}
	if !result.Airtable.Success || result.Email.Success {
		t.Fatalf("per-step flags wrong: airtable=%+v email=%+v", result.Airtable, result.Email)
	}
}

func TestSignupUnconfiguredAirtableIsSkipped(t *testing.T) {
	rs := resendFake(false)
	defer rs.Close()

	svc := newTestService("", rs.URL, "")
	result, err := svc.Signup(context.Background(), domain.SignupRequest{
		Email:        "user@example.com",
		IsBetaTester: false,
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if !result.Airtable.Skipped {
		t.Fatalf("airtable step should be marked skipped: %+v", result.Airtable)
	}
	if !result.Email.Success {
		t.Fatalf("email should still be sent")
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService("", "", "")

	for _, email := range []string{"", "   ", "no-at-sign"} {
		_, err := svc.Signup(context.Background(), domain.SignupRequest{Email: email})
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("email %q: expected ValidationError, got %v", email, err)
		}
	}
}

func TestSignupDefaultsSource(t *testing.T) {
	at := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"Source":"website"`) {
				t.Fatalf("default source not applied: %s", body)
			}
			fmt.Fprint(w, `{"id":"recNew","fields":{}}`)
			return
		}
		fmt.Fprint(w, `{"records":[]}`)
	}))
	defer at.Close()
	rs := resendFake(false)
	defer rs.Close()

	svc := newTestService(at.URL, rs.URL, "")
	if _, err := svc.Signup(context.Background(), domain.SignupRequest{Email: "a@b.co"}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
}

package email

import (
	"strings"
	"testing"

	"github.com/comptlabs/waitlist/internal/domain"
)

func TestWelcomeTemplateSelection(t *testing.T) {
	beta := Welcome("Sam", true)
	if beta.Template != domain.TemplateBetaTester {
		t.Fatalf("template = %q, want beta", beta.Template)
	}
	regular := Welcome("Sam", false)
	if regular.Template != domain.TemplateRegular {
		t.Fatalf("template = %q, want regular", regular.Template)
	}
	if beta.Subject == regular.Subject {
		t.Fatalf("templates should differ")
	}
}

func TestWelcomeGreeting(t *testing.T) {
	named := Welcome("Sam", false)
	if !strings.Contains(named.HTML, "Hi Sam") || !strings.Contains(named.Text, "Hi Sam") {
		t.Fatalf("first name not applied")
	}
	anon := Welcome("", false)
	if !strings.Contains(anon.HTML, "Hi there") {
		t.Fatalf("missing fallback greeting")
	}
}

func TestWelcomeHasBothBodies(t *testing.T) {
	for _, beta := range []bool{true, false} {
		msg := Welcome("", beta)
		if msg.HTML == "" || msg.Text == "" || msg.Subject == "" {
			t.Fatalf("incomplete message for beta=%v: %+v", beta, msg)
		}
	}
}

package service

import (
	"context"

	"github.com/comptlabs/waitlist/internal/adapter/resend"
	"github.com/comptlabs/waitlist/internal/domain"
	"github.com/comptlabs/waitlist/internal/email"
)

// EmailServiceStatus describes the email integration for diagnostics.
type EmailServiceStatus struct {
	Configured bool   `json:"configured"`
	From       string `json:"from,omitempty"`
	AdminEmail string `json:"adminEmail,omitempty"`
}

// EmailStatus reports whether the email integration is usable.
func (s *Service) EmailStatus() EmailServiceStatus {
	return EmailServiceStatus{
		Configured: s.email.Configured(),
		From:       s.email.From(),
		AdminEmail: s.config.AdminEmail,
	}
}

// SendTestEmail delivers a diagnostics message. With no explicit recipient
// it falls back to the configured admin address.
func (s *Service) SendTestEmail(ctx context.Context, to string) (string, error) {
	if to == "" {
		to = s.config.AdminEmail
	}
	if to == "" {
		return "", domain.NewValidationError("to", "a recipient is required (or set ADMIN_EMAIL)")
	}

	msg := email.Test(to)
	return s.email.Send(ctx, resend.Email{
		To:      []string{to},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/comptlabs/waitlist/internal/adapter/resend"
	"github.com/comptlabs/waitlist/internal/domain"
	"github.com/comptlabs/waitlist/internal/email"
)

// Signup runs the signup workflow in strict order: record the signup in the
// tabular store, send the welcome email, then mark the record as emailed.
//
// A duplicate email aborts the whole operation before any email is sent.
// Any other tabular-store failure is logged and the workflow continues, so
// the welcome email still goes out even when bookkeeping fails. Marking the
// record afterwards is best-effort only.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.SignupResult, error) {
	if err := validateSignup(&req); err != nil {
		return nil, err
	}

	result := &domain.SignupResult{Timestamp: time.Now()}

	// Step 1: persist the signup record.
	if s.airtable.Configured() {
		existing, err := s.airtable.FindByEmail(ctx, req.Email)
		if err != nil {
			s.logger.Warn("duplicate check failed, proceeding with create", "email", req.Email, "error", err)
		} else if existing != "" {
			return nil, domain.ErrDuplicateEmail
		}

		recordID, err := s.airtable.CreateSignup(ctx, &domain.SignupRecord{
			Email:        req.Email,
			IsBetaTester: req.IsBetaTester,
			FirstName:    req.FirstName,
			Source:       req.Source,
			Notes:        req.Notes,
			SignupDate:   result.Timestamp,
			Status:       domain.SignupStatusActive,
		})
		if err != nil {
			s.logger.Error("airtable create failed, continuing to email", "email", req.Email, "error", err)
			result.Airtable = domain.StepOutcome{Error: err.Error()}
		} else {
			result.RecordID = recordID
			result.Airtable = domain.StepOutcome{Success: true}
		}
	} else {
		s.logger.Warn("airtable not configured, skipping signup record", "email", req.Email)
		result.Airtable = domain.StepOutcome{Skipped: true}
	}

	// Step 2: send the welcome email, template chosen by the beta flag.
	msg := email.Welcome(req.FirstName, req.IsBetaTester)
	result.TemplateUsed = msg.Template

	emailID, err := s.email.Send(ctx, resend.Email{
		To:      []string{req.Email},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		s.logger.Error("welcome email failed", "email", req.Email, "template", msg.Template, "error", err)
		result.Email = domain.StepOutcome{Error: err.Error()}
		return result, nil
	}
	result.EmailID = emailID
	result.Email = domain.StepOutcome{Success: true}

	// Step 3: flag the record as emailed. Failures are logged only; the
	// email has already gone out.
	if result.Airtable.Success && result.RecordID != "" {
		if err := s.airtable.MarkWelcomeEmailSent(ctx, result.RecordID, time.Now()); err != nil {
			s.logger.Warn("failed to mark welcome email sent", "recordId", result.RecordID, "error", err)
		}
	}

	return result, nil
}

func validateSignup(req *domain.SignupRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return domain.NewValidationError("email", "a valid email address is required")
	}
	if req.Source == "" {
		req.Source = "website"
	}
	return nil
}

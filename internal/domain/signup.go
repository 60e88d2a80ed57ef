// Package domain defines the core domain models for the waitlist backend.
package domain

import "time"

// SignupStatus represents the lifecycle status of a signup record.
type SignupStatus string

const (
	SignupStatusActive   SignupStatus = "Active"
	SignupStatusInactive SignupStatus = "Inactive"
)

// WelcomeTemplate identifies which welcome email template was sent.
type WelcomeTemplate string

const (
	TemplateBetaTester WelcomeTemplate = "beta-tester-welcome"
	TemplateRegular    WelcomeTemplate = "regular-welcome"
)

// SignupRequest is the validated input to the signup workflow.
type SignupRequest struct {
	Email        string `json:"email"`
	IsBetaTester bool   `json:"isBetaTester"`
	FirstName    string `json:"firstName,omitempty"`
	Source       string `json:"source,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// SignupRecord represents one waitlist entrant as stored in the tabular store.
type SignupRecord struct {
	RecordID             string       `json:"recordId,omitempty"`
	Email                string       `json:"email"`
	IsBetaTester         bool         `json:"isBetaTester"`
	FirstName            string       `json:"firstName,omitempty"`
	Source               string       `json:"source"`
	Notes                string       `json:"notes,omitempty"`
	SignupDate           time.Time    `json:"signupDate"`
	Status               SignupStatus `json:"status"`
	WelcomeEmailSent     bool         `json:"welcomeEmailSent"`
	WelcomeEmailSentDate *time.Time   `json:"welcomeEmailSentDate,omitempty"`
}

// StepOutcome reports the result of one side effect within a multi-step
// workflow so callers can distinguish full, partial, and failed outcomes.
type StepOutcome struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SignupResult is the per-step outcome of one signup workflow run.
type SignupResult struct {
	RecordID     string          `json:"recordId,omitempty"`
	EmailID      string          `json:"emailId,omitempty"`
	TemplateUsed WelcomeTemplate `json:"templateUsed"`
	Airtable     StepOutcome     `json:"airtable"`
	Email        StepOutcome     `json:"email"`
	Timestamp    time.Time       `json:"timestamp"`
}

// FullSuccess reports whether every step of the workflow succeeded.
func (r *SignupResult) FullSuccess() bool {
	return r.Airtable.Success && r.Email.Success
}

// Partial reports whether the signup was recorded but the welcome email
// could not be delivered.
func (r *SignupResult) Partial() bool {
	return r.Airtable.Success && !r.Email.Success
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions the HTTP layer maps to distinct statuses.
var (
	// ErrDuplicateEmail indicates the email already has a signup record.
	ErrDuplicateEmail = errors.New("email already signed up")

	// ErrNotFound indicates a missing context key or team ID.
	ErrNotFound = errors.New("not found")

	// ErrNoMeaningfulText indicates a PDF yielded too little text to store.
	ErrNoMeaningfulText = errors.New("no meaningful text could be extracted")
)

// ValidationError is a client error caused by malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError indicates a required credential or setting is absent.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Setting)
}

// UpstreamError wraps a failure reported by an external managed service.
// Detail carries the upstream message for the response's details field.
type UpstreamError struct {
	Service string
	Detail  string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Service, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

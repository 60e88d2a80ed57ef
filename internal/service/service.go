// Package service implements the request workflows: signup orchestration,
// agent-team generation, and PDF/text ingestion.
package service

import (
	"log/slog"

	"github.com/comptlabs/waitlist/internal/adapter/airtable"
	"github.com/comptlabs/waitlist/internal/adapter/llm"
	"github.com/comptlabs/waitlist/internal/adapter/resend"
	"github.com/comptlabs/waitlist/internal/config"
)

// Service coordinates the external-service clients. All clients are
// constructed by the caller and injected so tests can point them at fakes.
type Service struct {
	config   *config.Config
	airtable *airtable.Client
	email    *resend.Client
	llm      *llm.Client
	logger   *slog.Logger

	// StrictAgentCount rejects generated teams whose agent count falls
	// outside the requested bounds instead of only logging a warning.
	StrictAgentCount bool
}

// New creates the service.
func New(cfg *config.Config, airtableClient *airtable.Client, emailClient *resend.Client, llmClient *llm.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		config:           cfg,
		airtable:         airtableClient,
		email:            emailClient,
		llm:              llmClient,
		logger:           logger,
		StrictAgentCount: cfg.StrictAgentCount,
	}
}

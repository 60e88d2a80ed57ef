package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comptlabs/waitlist/internal/adapter/llm"
	"github.com/comptlabs/waitlist/internal/domain"
)

const teamSystemPrompt = `You are an expert at designing small teams of AI agents.
Given a goal, respond with a single JSON object of the form:
{"team": {"summary": "...", "agents": [{"role": "...", "purpose": "...",
"responsibilities": ["..."], "systemPrompt": "...", "style": "...",
"callHint": "..."}]}}
The team must contain between %d and %d agents. Each agent needs a distinct
role. Respond with JSON only, no prose.`

// teamTemperature keeps the output structurally consistent across calls.
const teamTemperature = 0.2

const teamMaxTokens = 4000

type teamPayload struct {
	Team struct {
		Summary string `json:"summary"`
		Agents  []struct {
			Role             string   `json:"role"`
			Purpose          string   `json:"purpose"`
			Responsibilities []string `json:"responsibilities"`
			SystemPrompt     string   `json:"systemPrompt"`
			Style            string   `json:"style"`
			CallHint         string   `json:"callHint"`
		} `json:"agents"`
	} `json:"team"`
}

// GenerateTeam turns a free-text goal into a structured agent team via one
// model call with a strict JSON response format. Parse failures and missing
// structure are hard errors; quota errors are remapped to a friendlier
// message. There are no retries.
func (s *Service) GenerateTeam(ctx context.Context, goal string, maxAgents int) (*domain.AgentTeam, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, domain.NewValidationError("goal", "goal is required")
	}
	if !s.llm.Configured() {
		return nil, &domain.ConfigurationError{Setting: "OPENAI_API_KEY"}
	}
	maxAgents = domain.ClampMaxAgents(maxAgents)

	temperature := teamTemperature
	maxTokens := teamMaxTokens
	resp, err := s.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
		Model: s.config.OpenAIModel,
		Messages: []llm.ChatMessage{
			{Role: "system", Content: fmt.Sprintf(teamSystemPrompt, domain.MinAgents, maxAgents)},
			{Role: "user", Content: "Goal: " + goal},
		},
		Temperature:    &temperature,
		MaxTokens:      &maxTokens,
		ResponseFormat: &llm.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		if llm.IsRateLimited(err) {
			return nil, &domain.UpstreamError{
				Service: "openai",
				Detail:  "the model service is temporarily over capacity, please try again in a moment",
				Err:     err,
			}
		}
		return nil, &domain.UpstreamError{Service: "openai", Detail: err.Error(), Err: err}
	}

	var payload teamPayload
	if err := json.Unmarshal([]byte(resp.Content()), &payload); err != nil {
		return nil, &domain.UpstreamError{
			Service: "openai",
			Detail:  "model response was not valid JSON",
			Err:     err,
		}
	}
	if len(payload.Team.Agents) == 0 {
		return nil, &domain.UpstreamError{
			Service: "openai",
			Detail:  "model response did not contain team.agents",
		}
	}

	now := time.Now()
	team := &domain.AgentTeam{
		ID:        generatedID("team"),
		Goal:      goal,
		Summary:   payload.Team.Summary,
		CreatedAt: now,
	}
	for _, a := range payload.Team.Agents {
		team.Agents = append(team.Agents, domain.Agent{
			ID:               generatedID("agent"),
			Role:             a.Role,
			Purpose:          a.Purpose,
			Responsibilities: a.Responsibilities,
			SystemPrompt:     a.SystemPrompt,
			Style:            a.Style,
			CallHint:         a.CallHint,
		})
	}

	if n := len(team.Agents); n < domain.MinAgents || n > maxAgents {
		if s.StrictAgentCount {
			return nil, &domain.UpstreamError{
				Service: "openai",
				Detail:  fmt.Sprintf("model produced %d agents, expected %d to %d", n, domain.MinAgents, maxAgents),
			}
		}
		s.logger.Warn("agent count outside requested bounds",
			"count", n, "min", domain.MinAgents, "max", maxAgents)
	}

	return team, nil
}

// generatedID builds IDs of the form <prefix>_<millis>_<6hex>.
func generatedID(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(id[:3]))
}

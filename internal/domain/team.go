package domain

import "time"

// Agent is one generated role description within an agent team.
type Agent struct {
	ID               string   `json:"id"`
	Role             string   `json:"role"`
	Purpose          string   `json:"purpose"`
	Responsibilities []string `json:"responsibilities"`
	SystemPrompt     string   `json:"systemPrompt"`
	Style            string   `json:"style"`
	CallHint         string   `json:"callHint"`
}

// AgentTeam is a generated, structured set of role descriptions produced
// from a free-text goal.
type AgentTeam struct {
	ID        string    `json:"id"`
	Goal      string    `json:"goal"`
	Summary   string    `json:"summary"`
	Agents    []Agent   `json:"agents"`
	CreatedAt time.Time `json:"createdAt"`
}

// MinAgents and MaxAgentsCeiling bound the requested team size. A request's
// maxAgents is clamped into [MinAgents, MaxAgentsCeiling].
const (
	MinAgents        = 3
	MaxAgentsCeiling = 7
	DefaultMaxAgents = 5
)

// ClampMaxAgents normalizes a requested team-size ceiling. Zero (unset)
// yields the default.
func ClampMaxAgents(requested int) int {
	if requested == 0 {
		return DefaultMaxAgents
	}
	if requested < MinAgents {
		return MinAgents
	}
	if requested > MaxAgentsCeiling {
		return MaxAgentsCeiling
	}
	return requested
}

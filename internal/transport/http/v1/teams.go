package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AgentizeRequest is the body of POST /api/agentize.
type AgentizeRequest struct {
	Goal      string `json:"goal"`
	MaxAgents int    `json:"maxAgents"`
}

// Agentize generates an agent team from a goal and stores it in the session.
// POST /api/agentize
func (h *Handler) Agentize(c echo.Context) error {
	var req AgentizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.Goal == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "goal is required",
		})
	}

	team, err := h.service.GenerateTeam(c.Request().Context(), req.Goal, req.MaxAgents)
	if err != nil {
		return fail(c, err)
	}

	store := h.sessionStore(c)
	teamID, err := store.StoreAgentTeam(team)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "agent team generated",
		"team":    team,
		"teamId":  teamID,
	})
}

// GetSpace returns the session's full workspace: context overview, teams,
// and storage stats.
// GET /api/compt/space
func (h *Handler) GetSpace(c echo.Context) error {
	store := h.sessionStore(c)
	teams := store.AllAgentTeams()
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"context": store.AllContext(),
		"teams": map[string]any{
			"count": len(teams),
			"teams": teams,
		},
		"stats": store.Stats(),
	})
}

// PutSpaceRequest is the body of PUT /api/compt/space.
type PutSpaceRequest struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
}

// PutSpace stores workspace notes as a pasted-text context item.
// PUT /api/compt/space
func (h *Handler) PutSpace(c echo.Context) error {
	var req PutSpaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
	}

	title := req.Title
	if title == "" {
		title = "Workspace Notes"
	}
	store := h.sessionStore(c)
	key, item, err := h.service.PasteText(store, title, req.Notes)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"storageKey": key,
		"item":       item,
	})
}

// ListTeams returns all agent teams in the session.
// GET /api/compt/teams
func (h *Handler) ListTeams(c echo.Context) error {
	teams := h.sessionStore(c).AllAgentTeams()
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(teams),
		"teams":   teams,
	})
}

// GetTeam returns one agent team by ID.
// GET /api/compt/team/:teamId
func (h *Handler) GetTeam(c echo.Context) error {
	teamID := c.Param("teamId")
	team, ok := h.sessionStore(c).GetAgentTeam(teamID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "team not found",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"team":    team,
	})
}

// DeleteTeam removes one agent team by ID.
// DELETE /api/compt/team/:teamId
func (h *Handler) DeleteTeam(c echo.Context) error {
	teamID := c.Param("teamId")
	if !h.sessionStore(c).DeleteAgentTeam(teamID) {
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "team not found",
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "team deleted",
		"teamId":  teamID,
	})
}

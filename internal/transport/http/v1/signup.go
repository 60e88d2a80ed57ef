package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/comptlabs/waitlist/internal/domain"
)

// EmailSignupRequest is the body of POST /api/email-signup.
type EmailSignupRequest struct {
	Email        string `json:"email"`
	IsBetaTester *bool  `json:"isBetaTester"`
	FirstName    string `json:"firstName"`
	Source       string `json:"source"`
}

// TallySubmitRequest is the body of the legacy POST /api/tally-submit route.
type TallySubmitRequest struct {
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
	Source   string `json:"source"`
}

// EmailSignup runs the signup workflow.
// POST /api/email-signup
func (h *Handler) EmailSignup(c echo.Context) error {
	var req EmailSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if req.IsBetaTester == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "isBetaTester is required and must be a boolean",
		})
	}

	return h.runSignup(c, domain.SignupRequest{
		Email:        req.Email,
		IsBetaTester: *req.IsBetaTester,
		FirstName:    req.FirstName,
		Source:       req.Source,
	})
}

// TallySubmit is the legacy form-submission variant. It binds to the same
// orchestrator as EmailSignup; entrants via this route are non-beta.
// POST /api/tally-submit
func (h *Handler) TallySubmit(c echo.Context) error {
	var req TallySubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
	}

	source := req.Source
	if source == "" {
		source = "tally"
	}
	notes := strings.TrimSpace(req.Feedback)
	return h.runSignup(c, domain.SignupRequest{
		Email:        strings.TrimSpace(req.Email),
		IsBetaTester: false,
		Source:       source,
		Notes:        notes,
	})
}

func (h *Handler) runSignup(c echo.Context, req domain.SignupRequest) error {
	result, err := h.service.Signup(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}

	body := map[string]any{
		"success": result.Email.Success,
		"data": map[string]any{
			"recordId":     result.RecordID,
			"emailId":      result.EmailID,
			"templateUsed": result.TemplateUsed,
			"timestamp":    result.Timestamp,
		},
		"airtable": result.Airtable,
		"email":    result.Email,
	}

	switch {
	case result.FullSuccess():
		body["message"] = "Signup complete, welcome email sent."
		return c.JSON(http.StatusOK, body)
	case result.Partial():
		body["message"] = "Signup recorded, but the welcome email could not be sent."
		return c.JSON(http.StatusMultiStatus, body)
	case result.Email.Success:
		// Email went out but bookkeeping failed or was skipped.
		body["message"] = "Welcome email sent."
		return c.JSON(http.StatusOK, body)
	default:
		body["error"] = "signup failed"
		return c.JSON(http.StatusInternalServerError, body)
	}
}

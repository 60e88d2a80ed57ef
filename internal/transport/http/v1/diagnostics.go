package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// EmailServiceStatus reports whether the email integration is configured.
// GET /api/email-service/status
func (h *Handler) EmailServiceStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"status":  h.service.EmailStatus(),
	})
}

// EmailServiceTestRequest is the body of POST /api/email-service/test.
type EmailServiceTestRequest struct {
	To string `json:"to"`
}

// EmailServiceTest sends a diagnostics email.
// POST /api/email-service/test
func (h *Handler) EmailServiceTest(c echo.Context) error {
	var req EmailServiceTestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid request body",
		})
	}

	emailID, err := h.service.SendTestEmail(c.Request().Context(), req.To)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "test email sent",
		"emailId": emailID,
	})
}

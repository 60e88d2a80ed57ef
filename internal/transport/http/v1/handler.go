// Package v1 provides the HTTP handlers for the waitlist backend.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/comptlabs/waitlist/internal/domain"
	"github.com/comptlabs/waitlist/internal/service"
	"github.com/comptlabs/waitlist/internal/session"
)

// SessionStoreKey is the echo context key under which the session middleware
// places the request's *session.Store.
const SessionStoreKey = "session_store"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers all routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	// Signup
	e.POST("/api/email-signup", h.EmailSignup)
	e.POST("/api/tally-submit", h.TallySubmit)

	// Agent teams
	e.POST("/api/agentize", h.Agentize)
	e.GET("/api/compt/space", h.GetSpace)
	e.PUT("/api/compt/space", h.PutSpace)
	e.GET("/api/compt/teams", h.ListTeams)
	e.GET("/api/compt/team/:teamId", h.GetTeam)
	e.DELETE("/api/compt/team/:teamId", h.DeleteTeam)

	// Context ingestion
	e.POST("/upload-pdf", h.UploadPDF)
	e.POST("/upload-text", h.UploadText)
	e.POST("/paste-text", h.PasteText)
	e.GET("/context", h.ListContext)
	e.GET("/context/:key", h.GetContext)
	e.DELETE("/context/:key", h.DeleteContext)
	e.DELETE("/context", h.ClearContext)

	// Diagnostics
	e.GET("/api/email-service/status", h.EmailServiceStatus)
	e.POST("/api/email-service/test", h.EmailServiceTest)
}

// Health returns health status.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "waitlist backend is running",
	})
}

// sessionStore retrieves the request's session store placed by the session
// middleware.
func (h *Handler) sessionStore(c echo.Context) *session.Store {
	if store, ok := c.Get(SessionStoreKey).(*session.Store); ok {
		return store
	}
	// Handlers exercised without the middleware (tests) get a throwaway.
	store := session.NewStore()
	c.Set(SessionStoreKey, store)
	return store
}

// fail maps domain errors to the uniform failure envelope and HTTP status.
func fail(c echo.Context, err error) error {
	var (
		validationErr *domain.ValidationError
		configErr     *domain.ConfigurationError
		upstreamErr   *domain.UpstreamError
	)

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, map[string]any{
			"success": false,
			"error":   "This email is already signed up.",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "not found",
		})
	case errors.Is(err, domain.ErrNoMeaningfulText):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "No meaningful text could be extracted from the file.",
		})
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   validationErr.Error(),
		})
	case errors.As(err, &configErr):
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   configErr.Error(),
		})
	case errors.As(err, &upstreamErr):
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "external service failure",
			"details": upstreamErr.Detail,
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	}
}

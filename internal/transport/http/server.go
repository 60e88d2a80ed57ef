// Package http provides the HTTP server implementation for the waitlist
// backend.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/comptlabs/waitlist/internal/config"
	"github.com/comptlabs/waitlist/internal/service"
	"github.com/comptlabs/waitlist/internal/session"
	v1 "github.com/comptlabs/waitlist/internal/transport/http/v1"
)

// NewServer creates and configures the echo server.
func NewServer(cfg *config.Config, svc *service.Service, sessions *session.Manager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if cfg.FrontendURL != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		}))
	} else {
		e.Use(middleware.CORS())
	}
	e.Use(SessionMiddleware(sessions))

	// Handlers
	handler := v1.NewHandler(svc)
	handler.RegisterRoutes(e)

	return e
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/comptlabs/waitlist/internal/session"
	v1 "github.com/comptlabs/waitlist/internal/transport/http/v1"
)

const sessionCookieName = "waitlist_session"

// SessionMiddleware resolves the request's session store from a signed
// cookie, issuing a fresh session when the cookie is absent or tampered.
// The store is placed in the echo context for handlers.
func SessionMiddleware(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				if id, ok := manager.Verify(cookie.Value); ok {
					sessionID = id
				}
			}
			if sessionID == "" {
				sessionID = manager.NewSessionID()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    manager.Sign(sessionID),
					Path:     "/",
					MaxAge:   int(manager.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(v1.SessionStoreKey, manager.Get(sessionID))
			return next(c)
		}
	}
}

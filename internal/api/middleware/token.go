package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/core/service"
)

// Token re-reads the session token on every request. An expired or
// unreadable token signs the session out before the guard runs, so the guard
// sends the browser to the login page instead of letting the backend reject
// the call.
func Token(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess == nil {
				return next(c)
			}
			// On error the session is already cleared and claims stay zero.
			claims, _ := auth.Check(c.Request().Context(), sess)
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

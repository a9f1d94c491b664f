package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	csrfKey = "csrf"

	// CSRFField is the hidden form field carrying the token.
	CSRFField = "_csrf"
)

// CSRF protects the HTML form posts with a double-submit token kept in the
// pirates_csrf cookie. Pages read the token with CSRFToken and echo it back in
// a hidden field.
func CSRF(secure bool) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper:        preflighted,
		TokenLookup:    "form:" + CSRFField + ",header:" + echo.HeaderXCSRFToken,
		ContextKey:     csrfKey,
		CookieName:     "pirates_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// preflighted reports requests a page on another site cannot send without a
// CORS preflight, which this server never grants: JSON bodies and methods an
// HTML form cannot use.
func preflighted(c echo.Context) bool {
	req := c.Request()
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		return true
	}
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

// CSRFToken returns the token for forms rendered by this request; empty
// outside the CSRF middleware.
func CSRFToken(c echo.Context) string {
	token, _ := c.Get(csrfKey).(string)
	return token
}

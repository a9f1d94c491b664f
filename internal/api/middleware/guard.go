package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/metrics"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/guard"
)

// Guard enforces the route table. A refused navigation is answered with a
// redirect, never an error page: 302 for reads and 303 for form posts and
// other writes so the browser follows up with a GET.
func Guard(g *guard.Guard, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := domain.Principal{}
			if sess := SessionFrom(c); sess != nil {
				p = sess.Principal()
			}

			req := c.Request()
			route := routeOf(c)
			d := g.Authorize(route, p)
			decision := "allow"
			if !d.Allow {
				decision = "redirect"
			}
			metrics.GuardDecisionsTotal.WithLabelValues(decision, string(d.Reason)).Inc()

			if d.Allow {
				return next(c)
			}

			log.Debug().
				Str("route", route).
				Str("role", p.Role.String()).
				Str("reason", string(d.Reason)).
				Str("redirect", d.Redirect).
				Msg("navigation refused")

			code := http.StatusSeeOther
			if req.Method == http.MethodGet || req.Method == http.MethodHead {
				code = http.StatusFound
			}
			return c.Redirect(code, d.Redirect)
		}
	}
}

// routeOf returns the pattern echo matched, so an escaped slash inside a
// parameter cannot move the request off its route. The request path is used
// only when nothing matched.
func routeOf(c echo.Context) string {
	if r := c.Path(); r != "" {
		return r
	}
	return c.Request().URL.Path
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/core/session"
)

const (
	sessionKey = "session"
	claimsKey  = "claims"
	renewKey   = "session.renew"
)

// renewer swaps the request onto a new session; see Renew.
type renewer func(c echo.Context, prepare func(*session.Container) error) error

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the browser's session cookie to its hydrated container. A
// missing or malformed cookie starts a fresh session.
func Session(reg *session.Registry, opts SessionOptions) echo.MiddlewareFunc {
	if opts.CookieName == "" {
		opts.CookieName = "pirates_sid"
	}
	renew := renewer(func(c echo.Context, prepare func(*session.Container) error) error {
		ctx := c.Request().Context()
		fresh := reg.Get(ctx, uuid.NewString())
		if err := prepare(fresh); err != nil {
			return err
		}
		if old := SessionFrom(c); old != nil {
			old.ClearPrincipal(ctx)
		}
		setSessionCookie(c, opts, fresh.ID())
		c.Set(sessionKey, fresh)
		return nil
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(opts.CookieName); err == nil {
				if id, err := uuid.Parse(ck.Value); err == nil {
					sid = id.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}

			// Refreshed on every request so an active session does not expire.
			setSessionCookie(c, opts, sid)

			c.Set(sessionKey, reg.Get(c.Request().Context(), sid))
			c.Set(renewKey, renew)
			return next(c)
		}
	}
}

// setSessionCookie issues sid, replacing any session cookie already queued on
// the response.
func setSessionCookie(c echo.Context, opts SessionOptions, sid string) {
	h := c.Response().Header()
	var kept []string
	for _, v := range h.Values(echo.HeaderSetCookie) {
		if !strings.HasPrefix(v, opts.CookieName+"=") {
			kept = append(kept, v)
		}
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
	c.SetCookie(&http.Cookie{
		Name:     opts.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(opts.TTL / time.Second),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Renew moves the request onto a newly issued session id, so an id planted
// before sign-in never carries the signed-in state. prepare runs against the
// new container; when it fails the request keeps its old session untouched.
// On success the old container is signed out and the browser receives the new
// cookie.
func Renew(c echo.Context, prepare func(*session.Container) error) error {
	r, ok := c.Get(renewKey).(renewer)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
	}
	return r(c, prepare)
}

// SessionFrom returns the container attached by Session, nil outside it.
func SessionFrom(c echo.Context) *session.Container {
	sess, _ := c.Get(sessionKey).(*session.Container)
	return sess
}

// ClaimsFrom returns the token claims attached by Token; zero for anonymous
// sessions.
func ClaimsFrom(c echo.Context) service.Claims {
	claims, _ := c.Get(claimsKey).(service.Claims)
	return claims
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/session"
)

// ctxSession returns the session attached by the Session middleware and its
// principal. The guard has already run, so a protected route always sees an
// authenticated principal here; the check only catches routes mounted
// outside the middleware chain.
func ctxSession(c echo.Context) (*session.Container, domain.Principal, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, domain.Principal{}, echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
	}
	p := sess.Principal()
	if !p.IsAuthenticated() {
		return nil, domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return sess, p, nil
}

// mount starts loading a screen. Its context is cancelled with
// domain.ErrSuperseded as soon as the same session mounts another screen.
func mount(c echo.Context, nav *navigation.Tracker, sess *session.Container) (context.Context, func()) {
	if nav == nil {
		return c.Request().Context(), func() {}
	}
	return nav.Mount(c.Request().Context(), sess.ID(), c.Request().URL.Path)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// queryID reads the first of names that is present.
func queryID(c echo.Context, names ...string) (int64, error) {
	for _, name := range names {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
		}
		return id, nil
	}
	return 0, echo.NewHTTPError(http.StatusBadRequest, names[0]+" is required")
}

// listQuery reads the table controls; bad numbers fall back to defaults.
func listQuery(c echo.Context) ports.ListQuery {
	q := ports.ListQuery{Name: strings.TrimSpace(c.QueryParam("name"))}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))
	q.IsOldestOrders, _ = strconv.ParseBool(c.QueryParam("isOldestOrders"))
	return q
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// formMessage is the text shown above a re-rendered form for err.
func formMessage(err error, fallback string) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return fallback
}

// isForm reports whether the request is a classic HTML form post, which is
// answered with a redirect instead of JSON.
func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

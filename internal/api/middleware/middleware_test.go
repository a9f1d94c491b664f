package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/guard"
	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/core/session"
	"github.com/pirates/party-console/internal/infrastructure/db/memory"
)

const sid = "6f1c2b1e-7d0a-4a57-9a55-3f9e8b7c2d10"

func newRegistry() *session.Registry {
	return session.NewRegistry(memory.NewKVStore(), zerolog.Nop())
}

func serve(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestSession_IssuesCookie(t *testing.T) {
	reg := newRegistry()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	var got *session.Container
	rec := serve(t, Session(reg, SessionOptions{TTL: time.Hour}), req, func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if got == nil {
		t.Fatalf("no session attached")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "pirates_sid" || cookies[0].Value != got.ID() {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode || cookies[0].MaxAge != 3600 {
		t.Fatalf("cookie attributes not set: %+v", cookies[0])
	}
}

func TestSession_ReusesCookie(t *testing.T) {
	reg := newRegistry()
	opts := SessionOptions{CookieName: "sid", TTL: time.Hour}

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	var a, b *session.Container
	serve(t, Session(reg, opts), first, func(c echo.Context) error { a = SessionFrom(c); return nil })

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	serve(t, Session(reg, opts), second, func(c echo.Context) error { b = SessionFrom(c); return nil })

	if a != b || a.ID() != sid {
		t.Fatalf("expected the same container for one cookie")
	}
}

func TestSession_RejectsForgedCookie(t *testing.T) {
	reg := newRegistry()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "pirates_sid", Value: "../../etc"})

	var got *session.Container
	serve(t, Session(reg, SessionOptions{}), req, func(c echo.Context) error { got = SessionFrom(c); return nil })
	if got.ID() == "../../etc" {
		t.Fatalf("a malformed cookie must not name a session")
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestToken_ClearsExpiredSession(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry()
	sess := reg.Get(ctx, sid)
	tok := signedToken(t, jwt.MapClaims{"sub": 7, "role": "SUPER_ADMIN", "exp": time.Now().Add(-time.Second).Unix()})
	if err := sess.SetPrincipal(ctx, domain.Principal{Role: domain.RoleSuperAdmin, Token: tok, UserID: 7}); err != nil {
		t.Fatalf("SetPrincipal: %v", err)
	}
	auth := service.NewAuthService(nil, service.NewTokenDecoder("secret"), zerolog.Nop())

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/houseManage", nil), httptest.NewRecorder())
	c.Set(sessionKey, sess)

	called := false
	if err := Token(auth)(func(c echo.Context) error {
		called = true
		if ClaimsFrom(c) != (service.Claims{}) {
			t.Fatalf("expired session must carry zero claims")
		}
		return nil
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if !sess.Principal().IsAnonymous() {
		t.Fatalf("expired session was not cleared")
	}
}

func TestToken_AttachesClaims(t *testing.T) {
	ctx := context.Background()
	sess := newRegistry().Get(ctx, sid)
	tok := signedToken(t, jwt.MapClaims{"data": []any{map[string]any{"id": 21, "party_id": 3, "userInfo": []any{1}}}})
	if err := sess.SetPrincipal(ctx, domain.Principal{Role: domain.RoleUser, Token: tok, UserID: 21}); err != nil {
		t.Fatalf("SetPrincipal: %v", err)
	}
	auth := service.NewAuthService(nil, service.NewTokenDecoder("secret"), zerolog.Nop())

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/user/party", nil), httptest.NewRecorder())
	c.Set(sessionKey, sess)

	if err := Token(auth)(func(c echo.Context) error {
		if got := ClaimsFrom(c); got.PartyID != 3 || !got.Profiled {
			t.Fatalf("unexpected claims: %+v", got)
		}
		return nil
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func guardRequest(t *testing.T, method, path string, p domain.Principal) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	ctx := context.Background()
	sess := newRegistry().Get(ctx, sid)
	if !p.IsAnonymous() {
		if err := sess.SetPrincipal(ctx, p); err != nil {
			t.Fatalf("SetPrincipal: %v", err)
		}
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(method, path, nil), rec)
	c.Set(sessionKey, sess)

	called := false
	if err := Guard(guard.Default(), zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_AnonymousAdminRedirectsToLogin(t *testing.T) {
	rec, called := guardRequest(t, http.MethodGet, "/admin/houseManage", domain.Principal{})
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/admin/login" {
		t.Fatalf("expected 302 to /admin/login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGuard_WrongRoleWriteUsesSeeOther(t *testing.T) {
	mgr := domain.Principal{Role: domain.RoleAuthManager, Token: "t", UserID: 8}
	rec, called := guardRequest(t, http.MethodPut, "/owner/manager/auth/3", mgr)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/manager/manageParty" {
		t.Fatalf("expected 303 to /manager/manageParty, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGuard_Allows(t *testing.T) {
	owner := domain.Principal{Role: domain.RoleAuthOwner, Token: "t", UserID: 7}
	rec, called := guardRequest(t, http.MethodGet, "/owner/manageHouse", owner)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected the owner to enter, got %d", rec.Code)
	}

	rec, called = guardRequest(t, http.MethodGet, "/health", domain.Principal{})
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("routes outside the table must pass, got %d", rec.Code)
	}
}

func TestGuard_UsesMatchedRoute(t *testing.T) {
	ctx := context.Background()
	sess := newRegistry().Get(ctx, sid)
	owner := domain.Principal{Role: domain.RoleAuthOwner, Token: "t", UserID: 7}
	if err := sess.SetPrincipal(ctx, owner); err != nil {
		t.Fatalf("SetPrincipal: %v", err)
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPut, "/admin/owner/auth/1%2F2", nil), rec)
	c.SetPath("/admin/owner/auth/:id")
	c.Set(sessionKey, sess)

	if err := Guard(guard.Default(), zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("an owner must not reach an admin route")
		return nil
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/owner/manageHouse" {
		t.Fatalf("expected 303 to /owner/manageHouse, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func sessionCookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pirates_sid" {
			out = append(out, c)
		}
	}
	return out
}

func TestRenew_IssuesNewSession(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry()
	old := reg.Get(ctx, sid)
	if err := old.SetPrincipal(ctx, domain.Principal{Role: domain.RoleUser, Token: "planted", UserID: 99}); err != nil {
		t.Fatalf("SetPrincipal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/owner/login", nil)
	req.AddCookie(&http.Cookie{Name: "pirates_sid", Value: sid})
	var fresh *session.Container
	rec := serve(t, Session(reg, SessionOptions{TTL: time.Hour}), req, func(c echo.Context) error {
		if err := Renew(c, func(s *session.Container) error {
			return s.SetPrincipal(ctx, domain.Principal{Role: domain.RoleAuthOwner, Token: "t", UserID: 7})
		}); err != nil {
			return err
		}
		fresh = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if fresh == nil || fresh.ID() == sid || fresh.Principal().UserID != 7 {
		t.Fatalf("expected a new signed-in container, got %+v", fresh)
	}
	cookies := sessionCookies(rec)
	if len(cookies) != 1 || cookies[0].Value != fresh.ID() {
		t.Fatalf("expected only the new session cookie, got %+v", cookies)
	}
	if !old.Principal().IsAnonymous() {
		t.Fatalf("the old session id must be signed out")
	}
}

func TestRenew_KeepsSessionOnFailure(t *testing.T) {
	reg := newRegistry()
	req := httptest.NewRequest(http.MethodPost, "/owner/login", nil)
	req.AddCookie(&http.Cookie{Name: "pirates_sid", Value: sid})

	failed := errors.New("bad credentials")
	rec := serve(t, Session(reg, SessionOptions{TTL: time.Hour}), req, func(c echo.Context) error {
		if err := Renew(c, func(*session.Container) error { return failed }); !errors.Is(err, failed) {
			t.Fatalf("expected the prepare error, got %v", err)
		}
		if SessionFrom(c).ID() != sid {
			t.Fatalf("a failed renew must keep the session")
		}
		return c.NoContent(http.StatusOK)
	})

	if cookies := sessionCookies(rec); len(cookies) != 1 || cookies[0].Value != sid {
		t.Fatalf("expected the old session cookie, got %+v", cookies)
	}
}

func TestRenew_OutsideSession(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := Renew(c, func(*session.Container) error { return nil }); !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func csrfRequest(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	called := false
	err := CSRF(false)(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, CSRFToken(c))
	})(c)
	return rec, called, err
}

func TestCSRF_FormPostNeedsToken(t *testing.T) {
	rec, _, err := csrfRequest(t, httptest.NewRequest(http.MethodGet, "/owner/login", nil))
	if err != nil {
		t.Fatalf("GET must pass: %v", err)
	}
	token := rec.Body.String()
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pirates_csrf" {
			cookie = c
		}
	}
	if token == "" || cookie == nil || cookie.Value != token || !cookie.HttpOnly {
		t.Fatalf("expected the token in context and cookie, got %q %+v", token, cookie)
	}

	post := func(form url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/owner/login", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(&http.Cookie{Name: "pirates_csrf", Value: token})
		return req
	}

	_, called, err := csrfRequest(t, post(url.Values{"username": {"kim"}}))
	var he *echo.HTTPError
	if called || !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("a form post without a token must be refused, got %v", err)
	}

	_, called, err = csrfRequest(t, post(url.Values{"username": {"kim"}, CSRFField: {"forged"}}))
	if called || !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("a wrong token must be refused with 403, got %v", err)
	}

	_, called, err = csrfRequest(t, post(url.Values{"username": {"kim"}, CSRFField: {token}}))
	if err != nil || !called {
		t.Fatalf("the matching token must pass, got %v", err)
	}
}

func TestCSRF_SkipsPreflightedRequests(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/owner/login", strings.NewReader(`{"username":"kim"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if _, called, err := csrfRequest(t, req); err != nil || !called {
		t.Fatalf("a JSON post must pass, got %v", err)
	}

	if _, called, err := csrfRequest(t, httptest.NewRequest(http.MethodPut, "/owner/manager/auth/3", nil)); err != nil || !called {
		t.Fatalf("a PUT must pass, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader("x=1"))
	req.Header.Set(echo.HeaderContentType, "text/plain")
	if _, called, err := csrfRequest(t, req); err == nil || called {
		t.Fatalf("a plain-text post must be checked")
	}
}

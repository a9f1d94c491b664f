package handler

import (
	"context"
	"encoding/json"
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

	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/ports"
	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/core/session"
	"github.com/pirates/party-console/internal/infrastructure/db/memory"
)

const (
	testSID    = "0b8f6a64-1f7e-4a0e-8d7e-2b2f4f0c9a11"
	testSecret = "secret"
)

// stubBackend answers the backend calls a test sets a func for.
type stubBackend struct {
	ports.BackendAPI

	loginFn      func(family domain.Family, username, password string) (string, error)
	listOwnersFn func(ctx context.Context, q ports.ListQuery) (domain.List[domain.Staff], error)
	setPartyOnFn func(partyID int64, on bool) error
	partyUsersFn func(partyID int64) ([]domain.PartyMember, error)
	selectFn     func(sel domain.MatchSelection) error
	takenFn      func(family domain.Family, username string) bool
	signupFn     func(family domain.Family, in ports.StaffSignupInput) error
}

func (s *stubBackend) Login(_ context.Context, family domain.Family, username, password string) (string, error) {
	return s.loginFn(family, username, password)
}

func (s *stubBackend) UsernameTaken(_ context.Context, family domain.Family, username string) (bool, error) {
	return s.takenFn(family, username), nil
}

func (s *stubBackend) StaffSignup(_ context.Context, family domain.Family, in ports.StaffSignupInput) error {
	return s.signupFn(family, in)
}

func (s *stubBackend) ListOwners(ctx context.Context, _ string, q ports.ListQuery) (domain.List[domain.Staff], error) {
	return s.listOwnersFn(ctx, q)
}

func (s *stubBackend) SetPartyOn(_ context.Context, _ string, partyID int64, on bool) error {
	return s.setPartyOnFn(partyID, on)
}

func (s *stubBackend) PartyUsers(_ context.Context, _ string, partyID int64) ([]domain.PartyMember, error) {
	return s.partyUsersFn(partyID)
}

func (s *stubBackend) SelectMatch(_ context.Context, _ string, sel domain.MatchSelection) error {
	return s.selectFn(sel)
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

type fixture struct {
	reg  *session.Registry
	auth *service.AuthService
	nav  *navigation.Tracker
}

func newFixture(api ports.BackendAPI) *fixture {
	return &fixture{
		reg:  session.NewRegistry(memory.NewKVStore(), zerolog.Nop()),
		auth: service.NewAuthService(api, service.NewTokenDecoder(testSecret), zerolog.Nop()),
		nav:  navigation.NewTracker(),
	}
}

func (f *fixture) session(t *testing.T) *session.Container {
	t.Helper()
	return f.reg.Get(context.Background(), testSID)
}

// signIn stores a principal whose token matches it, so the token middleware
// keeps it.
func (f *fixture) signIn(t *testing.T, claims jwt.MapClaims) domain.Principal {
	t.Helper()
	tok := sign(t, claims)
	p, err := f.auth.Refresh(context.Background(), f.session(t), tok)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return p
}

// serve runs h behind the session and token middleware, the way the router
// mounts it. setup may set path parameters.
func (f *fixture) serve(t *testing.T, req *http.Request, h echo.HandlerFunc, setup func(echo.Context)) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req.AddCookie(&http.Cookie{Name: "pirates_sid", Value: testSID})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	chain := middleware.Session(f.reg, middleware.SessionOptions{TTL: time.Hour})(middleware.Token(f.auth)(h))
	return rec, chain(c)
}

// issuedSID returns the session id the response hands to the browser.
func issuedSID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	sid := ""
	for _, c := range rec.Result().Cookies() {
		if c.Name == "pirates_sid" {
			if sid != "" {
				t.Fatalf("session cookie set twice")
			}
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatalf("no session cookie issued")
	}
	return sid
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func withParam(name, value string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
}

func TestAuthHandler_Login_JSON(t *testing.T) {
	stub := &stubBackend{loginFn: func(family domain.Family, username, password string) (string, error) {
		if family != domain.FamilyOwner || username != "kim" || password != "pw" {
			t.Fatalf("unexpected args: %s %s %s", family, username, password)
		}
		return sign(t, jwt.MapClaims{"sub": 7, "role": "ROLE_AUTH_OWNER", "accomodation_id": 3}), nil
	}}
	f := newFixture(stub)
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())

	rec, err := f.serve(t, jsonRequest(http.MethodPost, "/owner/login", `{"username":"kim","password":"pw"}`), h.Login(domain.FamilyOwner), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "AUTH_OWNER" || resp["home"] != "/owner/manageHouse" || resp["authenticated"] != true {
		t.Fatalf("unexpected body: %v", resp)
	}
	if _, leaked := resp["token"]; leaked {
		t.Fatalf("token must never be sent to the browser")
	}
	sid := issuedSID(t, rec)
	if sid == testSID {
		t.Fatalf("signing in must issue a new session id")
	}
	if f.reg.Get(context.Background(), sid).Accommodation().ID != 3 {
		t.Fatalf("accommodation not stored")
	}
	if f.session(t).Principal().IsAuthenticated() {
		t.Fatalf("the pre-login session id must not be signed in")
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	stub := &stubBackend{loginFn: func(domain.Family, string, string) (string, error) {
		return "", domain.ErrInvalidCredentials
	}}
	f := newFixture(stub)
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())
	form := url.Values{"username": {"root"}, "password": {"bad"}}

	rec, err := f.serve(t, formRequest("/admin/login", form), h.Login(domain.FamilyAdmin), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), `action="/admin/login"`) {
		t.Fatalf("expected the login page again with 401, got %d", rec.Code)
	}
	if issuedSID(t, rec) != testSID {
		t.Fatalf("a failed sign-in must keep the session id")
	}

	stub.loginFn = func(domain.Family, string, string) (string, error) {
		return sign(t, jwt.MapClaims{"sub": 1, "role": "SUPER_ADMIN"}), nil
	}
	rec, err = f.serve(t, formRequest("/admin/login", form), h.Login(domain.FamilyAdmin), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/admin/houseManage" {
		t.Fatalf("expected 303 to /admin/houseManage, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	f := newFixture(&stubBackend{})
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())

	_, err := f.serve(t, jsonRequest(http.MethodPost, "/manager/login", `{"username":"park"}`), h.Login(domain.FamilyManager), nil)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	f := newFixture(&stubBackend{})
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())

	newUser := sign(t, jwt.MapClaims{"data": []any{map[string]any{"id": 21, "userInfo": []any{}}}})
	rec, err := f.serve(t, httptest.NewRequest(http.MethodGet, "/user/login/success?token="+newUser, nil), h.LoginSuccess, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/user/signup" {
		t.Fatalf("an unprofiled user must sign up first, got %q", rec.Header().Get(echo.HeaderLocation))
	}
	if sid := issuedSID(t, rec); sid == testSID || f.reg.Get(context.Background(), sid).Principal().UserID != 21 {
		t.Fatalf("the kakao sign-in must land on a new session id, got %s", sid)
	}

	rec, err = f.serve(t, httptest.NewRequest(http.MethodGet, "/user/login/success?token=garbage", nil), h.LoginSuccess, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("a bad token goes back to the login page, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_LogoutAndSession(t *testing.T) {
	f := newFixture(&stubBackend{})
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())
	f.signIn(t, jwt.MapClaims{"sub": 8, "role": "AUTH_MANAGER", "accomodation_id": 2})

	rec, err := f.serve(t, httptest.NewRequest(http.MethodPost, "/logout", nil), h.Logout, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/manager/login" {
		t.Fatalf("expected 303 to /manager/login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec, err = f.serve(t, httptest.NewRequest(http.MethodGet, "/session", nil), h.Session, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"authenticated":false`) || !strings.Contains(body, `"home":"/"`) {
		t.Fatalf("unexpected session body: %s", body)
	}
}

func TestAuthHandler_StaffSignup(t *testing.T) {
	var created []ports.StaffSignupInput
	stub := &stubBackend{
		takenFn: func(_ domain.Family, username string) bool { return username == "kim001" },
		signupFn: func(family domain.Family, in ports.StaffSignupInput) error {
			if family != domain.FamilyManager {
				t.Fatalf("unexpected family %s", family)
			}
			created = append(created, in)
			return nil
		},
	}
	f := newFixture(stub)
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())
	form := url.Values{
		"username":         {"kim001"},
		"password":         {"pw1234!"},
		"password_confirm": {"pw1234!"},
		"name":             {"kim"},
		"phone":            {"01012345678"},
		"owner_id":         {"3"},
	}

	rec, err := f.serve(t, formRequest("/manager/signup", form), h.StaffSignup(domain.FamilyManager), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), "사용할 수 없는 아이디") {
		t.Fatalf("a taken id must re-render the form with 409, got %d", rec.Code)
	}

	form.Set("username", "park002")
	form.Set("password_confirm", "other")
	rec, err = f.serve(t, formRequest("/manager/signup", form), h.StaffSignup(domain.FamilyManager), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "passwordConfirm must match password") {
		t.Fatalf("a mismatched confirmation must be refused, got %d %s", rec.Code, rec.Body.String())
	}

	form.Set("password_confirm", "pw1234!")
	rec, err = f.serve(t, formRequest("/manager/signup", form), h.StaffSignup(domain.FamilyManager), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/manager/login" {
		t.Fatalf("expected 303 to /manager/login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if len(created) != 1 || created[0].Username != "park002" || created[0].OwnerID != 3 || created[0].PhoneNumber != "01012345678" {
		t.Fatalf("unexpected signup: %+v", created)
	}
}

func TestAuthHandler_Duplicate(t *testing.T) {
	stub := &stubBackend{takenFn: func(family domain.Family, username string) bool {
		return family == domain.FamilyOwner && username == "kim001"
	}}
	f := newFixture(stub)
	h := NewAuthHandler(f.auth, f.nav, "/kakao", zerolog.Nop())

	rec, err := f.serve(t, httptest.NewRequest(http.MethodGet, "/owner/duplicate?username=kim001", nil), h.Duplicate(domain.FamilyOwner), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"duplicate":true`) {
		t.Fatalf("unexpected body: %s", body)
	}

	_, err = f.serve(t, httptest.NewRequest(http.MethodGet, "/owner/duplicate", nil), h.Duplicate(domain.FamilyOwner), nil)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a username, got %v", err)
	}

	rec, err = f.serve(t, httptest.NewRequest(http.MethodGet, "/owner/signup?username=lee002", nil), h.StaffSignupPage(domain.FamilyOwner), nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); !strings.Contains(body, "사용할 수 있는 아이디입니다.") || !strings.Contains(body, `value="lee002"`) {
		t.Fatalf("the page must report a free id and keep it: %s", body)
	}
}

func TestAdminHandler_HouseApprove(t *testing.T) {
	stub := &stubBackend{listOwnersFn: func(_ context.Context, q ports.ListQuery) (domain.List[domain.Staff], error) {
		if q.Page != 1 || q.PageSize != 5 || !q.IsOldestOrders {
			t.Fatalf("unexpected query: %+v", q)
		}
		return domain.List[domain.Staff]{Items: []domain.Staff{{ID: 4, Name: "kim"}}, TotalCount: 6}, nil
	}}
	f := newFixture(stub)
	f.signIn(t, jwt.MapClaims{"sub": 1, "role": "SUPER_ADMIN"})
	h := NewAdminHandler(service.NewAdminService(stub, nil, zerolog.Nop()), f.nav)

	req := httptest.NewRequest(http.MethodGet, "/admin/houseApprove?page=1&pageSize=5&isOldestOrders=true", nil)
	rec, err := f.serve(t, req, h.HouseApprove, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp service.ListPage[domain.Staff]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 1 || resp.Page.TotalPages != 2 || resp.Page.HasNext {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestAdminHandler_SupersededScreen(t *testing.T) {
	f := newFixture(nil)
	stub := &stubBackend{listOwnersFn: func(ctx context.Context, _ ports.ListQuery) (domain.List[domain.Staff], error) {
		// The user clicks elsewhere before the backend answers.
		_, release := f.nav.Mount(context.Background(), testSID, "/admin/houseManage")
		defer release()
		<-ctx.Done()
		return domain.List[domain.Staff]{}, ctx.Err()
	}}
	f.auth = service.NewAuthService(stub, service.NewTokenDecoder(testSecret), zerolog.Nop())
	f.signIn(t, jwt.MapClaims{"sub": 1, "role": "SUPER_ADMIN"})
	h := NewAdminHandler(service.NewAdminService(stub, nil, zerolog.Nop()), f.nav)

	_, err := f.serve(t, httptest.NewRequest(http.MethodGet, "/admin/houseApprove", nil), h.HouseApprove, nil)
	if !errors.Is(err, domain.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}

func TestManagerHandler_PartyOn(t *testing.T) {
	var got struct {
		id int64
		on bool
	}
	stub := &stubBackend{setPartyOnFn: func(id int64, on bool) error {
		got.id, got.on = id, on
		return nil
	}}
	f := newFixture(stub)
	f.signIn(t, jwt.MapClaims{"sub": 8, "role": "AUTH_MANAGER", "accomodation_id": 2})
	svc := service.NewManagerService(stub, service.NewMatchClock(memory.NewKVStore()), nil, zerolog.Nop())
	h := NewManagerHandler(svc, f.auth, f.nav)

	_, err := f.serve(t, jsonRequest(http.MethodPut, "/manager/partyOn/5", `{}`), h.PartyOn, withParam("id", "5"))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("a missing switch must be rejected, got %v", err)
	}

	rec, err := f.serve(t, jsonRequest(http.MethodPut, "/manager/partyOn/5", `{"on":false}`), h.PartyOn, withParam("id", "5"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || got.id != 5 || got.on {
		t.Fatalf("unexpected call: code=%d %+v", rec.Code, got)
	}

	_, err = f.serve(t, jsonRequest(http.MethodPut, "/manager/partyOn/x", `{"on":true}`), h.PartyOn, withParam("id", "x"))
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("a bad id must be rejected, got %v", err)
	}
}

func TestUserHandler_SelectMatchUsesTokenParty(t *testing.T) {
	var got domain.MatchSelection
	male, female := true, false
	stub := &stubBackend{
		selectFn: func(sel domain.MatchSelection) error {
			got = sel
			return nil
		},
		partyUsersFn: func(partyID int64) ([]domain.PartyMember, error) {
			if partyID != 3 {
				t.Fatalf("candidates loaded for party %d", partyID)
			}
			return []domain.PartyMember{{ID: 21, Gender: &male}, {ID: 22, Gender: &female}}, nil
		},
	}
	f := newFixture(stub)
	f.signIn(t, jwt.MapClaims{"data": []any{map[string]any{"id": 21, "party_id": 3, "userInfo": []any{1}}}})
	svc := service.NewUserService(stub, service.NewMatchClock(memory.NewKVStore()), 0, zerolog.Nop())
	h := NewUserHandler(svc, f.nav)

	rec, err := f.serve(t, jsonRequest(http.MethodPost, "/user/match/select", `{"party_id":99,"user_id_2":22}`), h.SelectMatch, nil)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got != (domain.MatchSelection{UserID: 21, PartyID: 3, TargetID: 22}) {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestUserHandler_PartyTeams(t *testing.T) {
	team := 1
	stub := &stubBackend{partyUsersFn: func(partyID int64) ([]domain.PartyMember, error) {
		if partyID != 3 {
			t.Fatalf("unexpected party %d", partyID)
		}
		return []domain.PartyMember{{ID: 21, Team: &team}, {ID: 22}}, nil
	}}
	f := newFixture(stub)
	f.signIn(t, jwt.MapClaims{"data": []any{map[string]any{"id": 21, "party_id": 3, "userInfo": []any{1}}}})
	h := NewUserHandler(service.NewUserService(stub, service.NewMatchClock(memory.NewKVStore()), 0, zerolog.Nop()), f.nav)

	rec, err := f.serve(t, httptest.NewRequest(http.MethodGet, "/user/party/userList/3", nil), h.PartyTeams, withParam("party_id", "3"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var groups []struct {
		Team    *int             `json:"team"`
		Members []map[string]any `json:"members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(groups) != 2 || groups[0].Team != nil || *groups[1].Team != 1 {
		t.Fatalf("unexpected groups: %s", rec.Body.String())
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	e := echo.New()

	h := NewHealthDependenciesHandler(map[string]Checker{
		"redis": func(context.Context) error { return nil },
		"mongo": func(context.Context) error { return errors.New("no reachable servers") },
	})
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), `"degraded"`) {
		t.Fatalf("expected 503 degraded, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if err := NewHealthDependenciesHandler(nil).Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("nothing to check must be ready, got %d", rec.Code)
	}
}

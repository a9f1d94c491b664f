package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/guard"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/core/session"
	"github.com/pirates/party-console/internal/ui"
)

type AuthHandler struct {
	auth     *service.AuthService
	nav      *navigation.Tracker
	kakaoURL string
	log      zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, nav *navigation.Tracker, kakaoURL string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, nav: nav, kakaoURL: kakaoURL, log: log}
}

// UserLoginPage renders the Kakao sign-in page.
func (h *AuthHandler) UserLoginPage(c echo.Context) error {
	if sess := middleware.SessionFrom(c); sess != nil && sess.Principal().IsAuthenticated() {
		return c.Redirect(http.StatusFound, guard.HomePath(sess.Principal().Role))
	}
	return ui.Render(c.Response(), http.StatusOK, ui.UserLoginPage(h.kakaoURL))
}

// LoginPage renders the username/password form of a console area.
func (h *AuthHandler) LoginPage(family domain.Family) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess := middleware.SessionFrom(c); sess != nil {
			if p := sess.Principal(); p.IsAuthenticated() && p.Role.Family() == family {
				return c.Redirect(http.StatusFound, guard.HomePath(p.Role))
			}
		}
		return ui.Render(c.Response(), http.StatusOK, ui.LoginPage(family, c.QueryParam("error"), middleware.CSRFToken(c)))
	}
}

// Login signs in through the backend login of a console area. A successful
// sign-in moves the browser onto a new session id.
//
// @Summary      Sign in to a console area
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        family  path      string        true  "admin, owner or manager"
// @Param        body    body      loginRequest  true  "Credentials"
// @Success      200     {object}  sessionResponse
// @Success      303     {string}  string  "Form posts are redirected to the role's home"
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      502     {object}  errorResponse
// @Router       /{family}/login [post]
func (h *AuthHandler) Login(family domain.Family) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			if isForm(c) {
				return ui.Render(c.Response(), http.StatusBadRequest, ui.LoginPage(family, "아이디와 비밀번호를 입력하세요.", middleware.CSRFToken(c)))
			}
			return err
		}
		sess := middleware.SessionFrom(c)
		if sess == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
		}

		var p domain.Principal
		err := middleware.Renew(c, func(fresh *session.Container) error {
			var err error
			p, err = h.auth.Login(c.Request().Context(), fresh, family, req.Username, req.Password)
			return err
		})
		if err != nil {
			if isForm(c) && errors.Is(err, domain.ErrInvalidCredentials) {
				return ui.Render(c.Response(), http.StatusUnauthorized, ui.LoginPage(family, "아이디 또는 비밀번호가 올바르지 않습니다.", middleware.CSRFToken(c)))
			}
			return err
		}

		if h.nav != nil {
			h.nav.Unmount(sess.ID())
		}
		if isForm(c) {
			return c.Redirect(http.StatusSeeOther, guard.HomePath(p.Role))
		}
		return c.JSON(http.StatusOK, snapshotResponse(middleware.SessionFrom(c).Snapshot()))
	}
}

// LoginSuccess adopts the token handed over by the Kakao callback.
//
// @Summary      Complete the Kakao sign-in
// @Tags         auth
// @Param        token  query  string  true  "Backend access token"
// @Success      302    {string}  string  "Redirect to the signup form or the party screen"
// @Router       /user/login/success [get]
func (h *AuthHandler) LoginSuccess(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		token = strings.TrimSpace(c.QueryParam("access_token"))
	}
	sess := middleware.SessionFrom(c)
	if sess == nil || token == "" {
		return c.Redirect(http.StatusFound, guard.LoginPath(domain.FamilyUser))
	}

	var claims service.Claims
	err := middleware.Renew(c, func(fresh *session.Container) error {
		var err error
		claims, err = h.auth.AdoptToken(c.Request().Context(), fresh, token)
		return err
	})
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", sess.ID()).Msg("kakao token rejected")
		return c.Redirect(http.StatusFound, guard.LoginPath(domain.FamilyUser))
	}
	if !claims.Profiled {
		return c.Redirect(http.StatusFound, "/user/signup")
	}
	return c.Redirect(http.StatusFound, guard.HomePath(domain.RoleUser))
}

// StaffSignupPage renders the owner or manager signup form. A username in
// the query runs the duplicate-ID check first.
func (h *AuthHandler) StaffSignupPage(family domain.Family) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess := middleware.SessionFrom(c); sess != nil && sess.Principal().IsAuthenticated() {
			return c.Redirect(http.StatusFound, guard.HomePath(sess.Principal().Role))
		}
		st := ui.StaffSignupState{
			Username: strings.TrimSpace(c.QueryParam("username")),
			CSRF:     middleware.CSRFToken(c),
		}
		if st.Username != "" {
			taken, err := h.auth.UsernameTaken(c.Request().Context(), family, st.Username)
			if err != nil {
				return err
			}
			st.Checked, st.Taken = true, taken
		}
		return ui.Render(c.Response(), http.StatusOK, ui.StaffSignupPage(family, st))
	}
}

// Duplicate reports whether a username is already used in a console area.
//
// @Summary      Check a username before signup
// @Tags         auth
// @Produce      json
// @Param        family    path      string  true  "owner or manager"
// @Param        username  query     string  true  "Wanted username"
// @Success      200       {object}  duplicateResponse
// @Failure      400       {object}  errorResponse
// @Router       /{family}/duplicate [get]
func (h *AuthHandler) Duplicate(family domain.Family) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := strings.TrimSpace(c.QueryParam("username"))
		if username == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "username is required")
		}
		taken, err := h.auth.UsernameTaken(c.Request().Context(), family, username)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, duplicateResponse{Username: username, Duplicate: taken})
	}
}

// StaffSignup creates an owner or manager account. It starts unapproved and
// signs in like any other account of its area.
//
// @Summary      Sign up as an owner or manager
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Param        family  path  string              true  "owner or manager"
// @Param        body    body  staffSignupRequest  true  "Account"
// @Success      201
// @Success      303     {string}  string  "Form posts are redirected to the login page"
// @Failure      400     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Router       /{family}/signup [post]
func (h *AuthHandler) StaffSignup(family domain.Family) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req staffSignupRequest
		if err := bind(c, &req); err != nil {
			if isForm(c) {
				st := ui.StaffSignupState{Username: req.Username, Error: formMessage(err, "입력값을 확인하세요."), CSRF: middleware.CSRFToken(c)}
				return ui.Render(c.Response(), http.StatusBadRequest, ui.StaffSignupPage(family, st))
			}
			return err
		}

		if err := h.auth.StaffSignup(c.Request().Context(), family, req.input()); err != nil {
			if isForm(c) && errors.Is(err, domain.ErrUsernameTaken) {
				st := ui.StaffSignupState{Username: req.Username, Checked: true, Taken: true, CSRF: middleware.CSRFToken(c)}
				return ui.Render(c.Response(), http.StatusConflict, ui.StaffSignupPage(family, st))
			}
			return err
		}
		if isForm(c) {
			return c.Redirect(http.StatusSeeOther, guard.LoginPath(family))
		}
		return c.NoContent(http.StatusCreated)
	}
}

// Logout clears the session and sends the browser to the login page of the
// area it was signed in to.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303  {string}  string  "Redirect to the login page"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	family := sess.Principal().Role.Family()
	if h.nav != nil {
		h.nav.Unmount(sess.ID())
	}
	h.auth.Logout(c.Request().Context(), sess)
	return c.Redirect(http.StatusSeeOther, guard.LoginPath(family))
}

// Session reports the signed-in identity without its token.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return c.JSON(http.StatusOK, sessionResponse{Home: "/"})
	}
	return c.JSON(http.StatusOK, snapshotResponse(sess.Snapshot()))
}

func snapshotResponse(s session.Snapshot) sessionResponse {
	resp := sessionResponse{
		Authenticated: s.Principal.IsAuthenticated(),
		Home:          guard.HomePath(s.Principal.Role),
		Degraded:      s.Degraded,
	}
	if !resp.Authenticated {
		return resp
	}
	resp.Role = s.Principal.Role.String()
	resp.UserID = s.Principal.UserID
	resp.Username = s.Principal.Username
	if !s.Accommodation.IsZero() {
		acc := s.Accommodation
		resp.Accommodation = &acc
	}
	return resp
}

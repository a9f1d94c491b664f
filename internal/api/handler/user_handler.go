package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/ui"
)

// UserHandler serves the end-user party screens.
type UserHandler struct {
	user *service.UserService
	nav  *navigation.Tracker
}

func NewUserHandler(user *service.UserService, nav *navigation.Tracker) *UserHandler {
	return &UserHandler{user: user, nav: nav}
}

// SignupPage renders the profile form of a first-time user.
func (h *UserHandler) SignupPage(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	return ui.Render(c.Response(), http.StatusOK, ui.SignupPage(p, "", middleware.CSRFToken(c)))
}

// Signup completes the user's profile.
//
// @Summary      Complete signup
// @Tags         user
// @Accept       json,x-www-form-urlencoded
// @Param        body  body  signupRequest  true  "Profile"
// @Success      204
// @Success      303   {string}  string  "Form posts are redirected to the party screen"
// @Failure      400   {object}  errorResponse
// @Router       /user/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req signupRequest
	if err := bind(c, &req); err != nil {
		if isForm(c) {
			msg := formMessage(err, "입력값을 확인하세요.")
			return ui.Render(c.Response(), http.StatusBadRequest, ui.SignupPage(p, msg, middleware.CSRFToken(c)))
		}
		return err
	}
	if err := h.user.Signup(c.Request().Context(), p, req.input()); err != nil {
		return err
	}
	if isForm(c) {
		return c.Redirect(http.StatusSeeOther, "/user/party")
	}
	return c.NoContent(http.StatusNoContent)
}

// Party shows the party the user is checked into.
//
// @Summary      Current party
// @Tags         user
// @Produce      json
// @Success      200  {object}  domain.Party
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /user/party [get]
func (h *UserHandler) Party(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	party, err := h.user.Party(ctx, p, middleware.ClaimsFrom(c).PartyID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, party)
}

// PartyTeams lists the users of a party grouped by team.
//
// @Summary      Party teams
// @Tags         user
// @Produce      json
// @Param        party_id  path      int  true  "Party id"
// @Success      200       {array}   view.TeamGroup
// @Failure      409       {object}  errorResponse
// @Router       /user/party/userList/{party_id} [get]
func (h *UserHandler) PartyTeams(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	partyID, err := pathID(c, "party_id")
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	groups, err := h.user.PartyTeams(ctx, p, partyID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, groups)
}

// LoveSelect shows who the user may pick and how long is left.
//
// @Summary      Love-matching screen
// @Tags         user
// @Produce      json
// @Success      200  {object}  service.LoveSelect
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /user/party/loveSelect [get]
func (h *UserHandler) LoveSelect(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	screen, err := h.user.LoveSelect(ctx, p, middleware.ClaimsFrom(c).PartyID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, screen)
}

// SelectMatch records the user's pick.
//
// @Summary      Pick a match
// @Tags         user
// @Accept       json
// @Param        body  body  matchSelectRequest  true  "Pick"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /user/match/select [post]
func (h *UserHandler) SelectMatch(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req matchSelectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	partyID := middleware.ClaimsFrom(c).PartyID
	if partyID <= 0 {
		partyID = req.PartyID
	}
	if partyID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "party_id is required")
	}
	if err := h.user.SelectMatch(c.Request().Context(), p, partyID, req.TargetID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

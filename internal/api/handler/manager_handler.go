package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
)

// ManagerHandler serves the party manager screens.
type ManagerHandler struct {
	manager *service.ManagerService
	auth    *service.AuthService
	nav     *navigation.Tracker
}

func NewManagerHandler(manager *service.ManagerService, auth *service.AuthService, nav *navigation.Tracker) *ManagerHandler {
	return &ManagerHandler{manager: manager, auth: auth, nav: nav}
}

// HouseRegister lists the accommodations a manager can work for.
//
// @Summary      Registrable accommodations
// @Tags         manager
// @Produce      json
// @Success      200  {object}  houseResponse
// @Failure      409  {object}  errorResponse
// @Router       /manager/houseRegister [get]
func (h *ManagerHandler) HouseRegister(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	list, err := h.manager.RegistrableAccommodations(ctx, p)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, houseResponse{Current: sess.Accommodation(), Accommodations: list})
}

// ManageParty lists the parties of the manager's accommodation.
//
// @Summary      List parties
// @Tags         manager
// @Produce      json
// @Param        page      query     int  false  "0-based page"
// @Param        pageSize  query     int  false  "Rows per page (max 100)"
// @Success      200       {object}  partiesResponse
// @Failure      409       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /manager/manageParty [get]
func (h *ManagerHandler) ManageParty(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	acc, err := h.auth.EnsureAccommodationName(ctx, sess)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return navigation.Err(ctx, err)
	}
	page, err := h.manager.Parties(ctx, p, acc, listQuery(c))
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, partiesResponse{Accommodation: acc, Parties: page})
}

// CreateParty adds a party to the manager's accommodation.
//
// @Summary      Create a party
// @Tags         manager
// @Accept       json
// @Param        body  body  partyRequest  true  "Party"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /manager/party [post]
func (h *ManagerHandler) CreateParty(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req partyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.manager.CreateParty(c.Request().Context(), p, sess.Accommodation(), req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// UpdateParty edits a party.
//
// @Summary      Edit a party
// @Tags         manager
// @Accept       json
// @Param        id    path  int           true  "Party id"
// @Param        body  body  partyRequest  true  "Party"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Router       /manager/party/{id} [put]
func (h *ManagerHandler) UpdateParty(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req partyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.manager.UpdateParty(c.Request().Context(), p, sess.Accommodation(), id, req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteParty removes a party.
//
// @Summary      Delete a party
// @Tags         manager
// @Param        id   path  int  true  "Party id"
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /manager/party/{id} [delete]
func (h *ManagerHandler) DeleteParty(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.manager.DeleteParty(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PartyDetail lists the guests registered for a party.
//
// @Summary      Party guests
// @Tags         manager
// @Produce      json
// @Param        partyId  query     int  true  "Party id"
// @Success      200      {object}  service.PartyDetail
// @Failure      409      {object}  errorResponse
// @Router       /manager/managePartyDetail [get]
func (h *ManagerHandler) PartyDetail(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	partyID, err := queryID(c, "partyId", "id")
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	detail, err := h.manager.PartyDetail(ctx, p, partyID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// AddParticipant registers a guest for a party.
//
// @Summary      Add a guest
// @Tags         manager
// @Accept       json
// @Param        body  body  participantRequest  true  "Guest"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Router       /manager/participant [post]
func (h *ManagerHandler) AddParticipant(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req participantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.manager.AddParticipant(c.Request().Context(), p, req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// DeleteParticipant removes a guest.
//
// @Summary      Remove a guest
// @Tags         manager
// @Param        id   path  int  true  "Participant id"
// @Success      204
// @Router       /manager/participant/{id} [delete]
func (h *ManagerHandler) DeleteParticipant(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.manager.DeleteParticipant(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PartyOn opens or closes a party.
//
// @Summary      Toggle a party
// @Tags         manager
// @Accept       json
// @Param        id    path  int            true  "Party id"
// @Param        body  body  toggleRequest  true  "Switch"
// @Success      204
// @Failure      409   {object}  errorResponse
// @Router       /manager/partyOn/{id} [put]
func (h *ManagerHandler) PartyOn(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req toggleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.manager.SetPartyOn(c.Request().Context(), sess.ID(), p, id, *req.On); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PartyUserOn admits a guest to, or removes them from, the running party.
//
// @Summary      Toggle a party guest
// @Tags         manager
// @Accept       json
// @Param        id    path  int            true  "Party user id"
// @Param        body  body  toggleRequest  true  "Switch"
// @Success      204
// @Failure      409   {object}  errorResponse
// @Router       /manager/partyUserOn/{id} [put]
func (h *ManagerHandler) PartyUserOn(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req toggleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.manager.SetPartyUserOn(c.Request().Context(), sess.ID(), p, id, *req.On); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MatchStart opens the love-matching window of a party.
//
// @Summary      Start love matching
// @Tags         manager
// @Param        id   path  int  true  "Party id"
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /manager/party/matchStart/{id} [put]
func (h *ManagerHandler) MatchStart(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.manager.StartMatch(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PartyTeams lists the party users grouped by team.
//
// @Summary      Party teams
// @Tags         manager
// @Produce      json
// @Param        partyId  query     int  true  "Party id"
// @Success      200      {array}   view.TeamGroup
// @Failure      409      {object}  errorResponse
// @Router       /manager/party/userList [get]
func (h *ManagerHandler) PartyTeams(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	partyID, err := queryID(c, "partyId", "id")
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	groups, err := h.manager.PartyTeams(ctx, p, partyID)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, groups)
}

// AssignTeams moves party users into teams.
//
// @Summary      Assign teams
// @Tags         manager
// @Accept       json
// @Param        body  body  teamsRequest  true  "Assignments"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Router       /manager/party/userList [put]
func (h *ManagerHandler) AssignTeams(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req teamsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.manager.AssignTeams(c.Request().Context(), p, req.assignments()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

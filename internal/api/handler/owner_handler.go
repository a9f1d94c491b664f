package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
)

// OwnerHandler serves the guest-house owner screens.
type OwnerHandler struct {
	owner *service.OwnerService
	nav   *navigation.Tracker
}

func NewOwnerHandler(owner *service.OwnerService, nav *navigation.Tracker) *OwnerHandler {
	return &OwnerHandler{owner: owner, nav: nav}
}

// ManageHouse lists the owner's accommodations.
//
// @Summary      Owner accommodations
// @Tags         owner
// @Produce      json
// @Success      200  {object}  houseResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /owner/manageHouse [get]
func (h *OwnerHandler) ManageHouse(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	list, err := h.owner.Accommodations(ctx, p)
	if err != nil {
		return navigation.Err(ctx, err)
	}
	if ctx.Err() != nil {
		return navigation.Err(ctx, ctx.Err())
	}

	// The list already carries the name the session is missing.
	current := sess.Accommodation()
	for _, a := range list {
		if !current.NeedsName() || a.ID != current.ID {
			continue
		}
		named := domain.AccommodationContext{ID: a.ID, Name: a.Name}
		if err := sess.SetAccommodation(ctx, named); err != nil {
			return err
		}
		current = named
	}
	return c.JSON(http.StatusOK, houseResponse{Current: current, Accommodations: list})
}

// CreateAccommodation registers a new accommodation for the owner.
//
// @Summary      Register an accommodation
// @Tags         owner
// @Accept       json
// @Param        body  body  accommodationRequest  true  "Accommodation"
// @Success      201
// @Failure      400   {object}  errorResponse
// @Router       /owner/accomodation [post]
func (h *OwnerHandler) CreateAccommodation(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req accommodationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.owner.CreateAccommodation(c.Request().Context(), p, req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// UpdateAccommodation edits an accommodation.
//
// @Summary      Edit an accommodation
// @Tags         owner
// @Accept       json
// @Param        id    path  int                   true  "Accommodation id"
// @Param        body  body  accommodationRequest  true  "Accommodation"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /owner/accomodation/{id} [put]
func (h *OwnerHandler) UpdateAccommodation(c echo.Context) error {
	_, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req accommodationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.owner.UpdateAccommodation(c.Request().Context(), p, id, req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ManagerApprove lists the managers of the owner's accommodations.
//
// @Summary      List managers
// @Tags         owner
// @Produce      json
// @Param        page            query     int     false  "0-based page"
// @Param        pageSize        query     int     false  "Rows per page (max 100)"
// @Param        name            query     string  false  "Name filter"
// @Param        isOldestOrders  query     bool    false  "Oldest first"
// @Success      200             {object}  service.ListPage[domain.Staff]
// @Failure      409             {object}  errorResponse
// @Router       /owner/managerApprove [get]
func (h *OwnerHandler) ManagerApprove(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	page, err := h.owner.Managers(ctx, p, listQuery(c))
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ApproveManager approves a manager.
//
// @Summary      Approve a manager
// @Tags         owner
// @Param        id   path  int  true  "Manager id"
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /owner/manager/auth/{id} [put]
func (h *OwnerHandler) ApproveManager(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.owner.ApproveManager(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DenyManager withdraws a manager's approval.
//
// @Summary      Deny a manager
// @Tags         owner
// @Param        id   path  int  true  "Manager id"
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /owner/manager/deny/{id} [put]
func (h *OwnerHandler) DenyManager(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.owner.DenyManager(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

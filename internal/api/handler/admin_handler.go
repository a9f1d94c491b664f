package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
)

// AdminHandler serves the super-admin screens.
type AdminHandler struct {
	admin *service.AdminService
	nav   *navigation.Tracker
}

func NewAdminHandler(admin *service.AdminService, nav *navigation.Tracker) *AdminHandler {
	return &AdminHandler{admin: admin, nav: nav}
}

// HouseManage lists every registered accommodation.
//
// @Summary      List accommodations
// @Tags         admin
// @Produce      json
// @Param        page      query     int     false  "0-based page"
// @Param        pageSize  query     int     false  "Rows per page (max 100)"
// @Param        name      query     string  false  "Name filter"
// @Success      200       {object}  service.ListPage[domain.Accommodation]
// @Failure      409       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /admin/houseManage [get]
func (h *AdminHandler) HouseManage(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	page, err := h.admin.Accommodations(ctx, p, listQuery(c))
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, page)
}

// HouseApprove lists owners waiting for, or holding, approval.
//
// @Summary      List owners
// @Tags         admin
// @Produce      json
// @Param        page            query     int     false  "0-based page"
// @Param        pageSize        query     int     false  "Rows per page (max 100)"
// @Param        name            query     string  false  "Name filter"
// @Param        isOldestOrders  query     bool    false  "Oldest first"
// @Success      200             {object}  service.ListPage[domain.Staff]
// @Failure      409             {object}  errorResponse
// @Failure      502             {object}  errorResponse
// @Router       /admin/houseApprove [get]
func (h *AdminHandler) HouseApprove(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx, release := mount(c, h.nav, sess)
	defer release()

	page, err := h.admin.Owners(ctx, p, listQuery(c))
	if err != nil {
		return navigation.Err(ctx, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ApproveOwner approves an owner.
//
// @Summary      Approve an owner
// @Tags         admin
// @Param        id   path  int  true  "Owner id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/owner/auth/{id} [put]
func (h *AdminHandler) ApproveOwner(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.admin.ApproveOwner(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DenyOwner withdraws an owner's approval.
//
// @Summary      Deny an owner
// @Tags         admin
// @Param        id   path  int  true  "Owner id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/owner/deny/{id} [put]
func (h *AdminHandler) DenyOwner(c echo.Context) error {
	sess, p, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.admin.DenyOwner(c.Request().Context(), sess.ID(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/logging"
	"restaurant_api/internal/service"
)

// GroupHandler exposes manager/delivery-crew membership management. The
// group comes from the route, not the body.
type GroupHandler struct {
	Svc *service.GroupService
}

func (h *GroupHandler) members(c echo.Context, group string) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	users, err := h.Svc.Members(c.Request().Context(), p, group)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *GroupHandler) addMember(c echo.Context, group string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "group_add", "group", group)

	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.AddMember(ctx, p, group, req.Username); err != nil {
		l.Warn("group_add_failed", "username", req.Username, "error", err)
		return httpError(err)
	}

	l.Info("group_member_added", "username", req.Username)
	return c.JSON(http.StatusCreated, echo.Map{"message": req.Username + " added to " + group})
}

func (h *GroupHandler) removeMember(c echo.Context, group string) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveMember(c.Request().Context(), p, group, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user removed"})
}

func (h *GroupHandler) ManagerMembers(c echo.Context) error {
	return h.members(c, authz.RoleManager)
}

func (h *GroupHandler) AddManager(c echo.Context) error {
	return h.addMember(c, authz.RoleManager)
}

func (h *GroupHandler) RemoveManager(c echo.Context) error {
	return h.removeMember(c, authz.RoleManager)
}

func (h *GroupHandler) DeliveryCrewMembers(c echo.Context) error {
	return h.members(c, authz.RoleDeliveryCrew)
}

func (h *GroupHandler) AddDeliveryCrew(c echo.Context) error {
	return h.addMember(c, authz.RoleDeliveryCrew)
}

func (h *GroupHandler) RemoveDeliveryCrew(c echo.Context) error {
	return h.removeMember(c, authz.RoleDeliveryCrew)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant_api/internal/logging"
	"restaurant_api/internal/mykafka"
	"restaurant_api/internal/service"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	lines, err := h.Svc.ListItems(c.Request().Context(), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req struct {
		MenuItemID uint `json:"menu_item_id"`
		Quantity   uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, err := h.Svc.AddItem(ctx, p, req.MenuItemID, req.Quantity)
	if err != nil {
		l.Warn("cart_add_failed", "menu_item_id", req.MenuItemID, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":         "cart_item_added",
		"user_id":      p.UserID,
		"menu_item_id": line.MenuItemID,
		"quantity":     line.Quantity,
	})
	l.Info("cart_item_added", "menu_item_id", line.MenuItemID, "quantity", line.Quantity)
	return c.JSON(http.StatusCreated, line)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(c.Request().Context(), p); err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":    "cart_cleared",
		"user_id": p.UserID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

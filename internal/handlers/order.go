package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"restaurant_api/internal/logging"
	"restaurant_api/internal/models"
	"restaurant_api/internal/mykafka"
	"restaurant_api/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.List(c.Request().Context(), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_create")

	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.CreateFromCart(ctx, p)
	if err != nil {
		l.Warn("order_create_failed", "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "order_created",
		"user_id":  p.UserID,
		"order_id": order.ID,
		"total":    order.Total.String(),
	})
	l.Info("order_created", "order_id", order.ID, "total", order.Total.String())
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order_update")

	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Status         *string          `json:"status"`
		DeliveryCrewID *uint            `json:"delivery_crew_id"`
		UserID         *uint            `json:"user_id"`
		Total          *decimal.Decimal `json:"total"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	patch := service.OrderPatch{
		DeliveryCrewID: req.DeliveryCrewID,
		UserID:         req.UserID,
		Total:          req.Total,
	}
	if req.Status != nil {
		status, err := models.ParseOrderStatus(*req.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		patch.Status = &status
	}

	order, err := h.Svc.Update(ctx, p, id, patch)
	if err != nil {
		l.Warn("order_update_failed", "order_id", id, "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "order_updated",
		"user_id":  p.UserID,
		"order_id": order.ID,
		"status":   string(order.Status),
	})
	l.Info("order_updated", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), p, id); err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":     "order_deleted",
		"user_id":  p.UserID,
		"order_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

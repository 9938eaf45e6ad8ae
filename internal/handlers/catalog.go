package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"restaurant_api/internal/logging"
	"restaurant_api/internal/mykafka"
	"restaurant_api/internal/service"
)

type CatalogHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *CatalogHandler) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "menu_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category_create")

	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, p, service.CategoryInput{Slug: req.Slug, Title: req.Title})
	if err != nil {
		l.Warn("category_create_failed", "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":        "category_created",
		"user_id":     p.UserID,
		"category_id": cat.ID,
		"title":       cat.Title,
	})
	l.Info("category_created", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.UpdateCategory(c.Request().Context(), p, id, service.CategoryInput{Slug: req.Slug, Title: req.Title})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), p, id); err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":        "category_deleted",
		"user_id":     p.UserID,
		"category_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) ListMenuItems(c echo.Context) error {
	items, err := h.Svc.ListMenuItems(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetMenuItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.Svc.GetMenuItem(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

type menuItemRequest struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Featured   *bool            `json:"featured"`
	CategoryID *uint            `json:"category_id"`
}

func (h *CatalogHandler) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu_item_create")

	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	in := service.MenuItemInput{}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	if req.Featured != nil {
		in.Featured = *req.Featured
	}
	if req.CategoryID != nil {
		in.CategoryID = *req.CategoryID
	}

	item, err := h.Svc.CreateMenuItem(ctx, p, in)
	if err != nil {
		l.Warn("menu_item_create_failed", "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":         "menu_item_created",
		"user_id":      p.UserID,
		"menu_item_id": item.ID,
		"title":        item.Title,
	})
	l.Info("menu_item_created", "menu_item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHandler) UpdateMenuItem(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateMenuItem(c.Request().Context(), p, id, service.MenuItemPatch{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":         "menu_item_updated",
		"user_id":      p.UserID,
		"menu_item_id": item.ID,
	})
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) DeleteMenuItem(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteMenuItem(c.Request().Context(), p, id); err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":         "menu_item_deleted",
		"user_id":      p.UserID,
		"menu_item_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"github.com/labstack/echo/v4"
)

// Register wires the API surface. Every route expects an authenticated
// principal; mw is the middleware chain that supplies it.
func Register(e *echo.Echo, catalog *CatalogHandler, cart *CartHandler, order *OrderHandler, groups *GroupHandler, mw ...echo.MiddlewareFunc) {
	api := e.Group("/api", mw...)

	api.GET("/categories", catalog.ListCategories)
	api.POST("/categories", catalog.CreateCategory)
	api.PUT("/categories/:id", catalog.UpdateCategory)
	api.DELETE("/categories/:id", catalog.DeleteCategory)

	api.GET("/menu-items", catalog.ListMenuItems)
	api.POST("/menu-items", catalog.CreateMenuItem)
	api.GET("/menu-items/:id", catalog.GetMenuItem)
	api.PUT("/menu-items/:id", catalog.UpdateMenuItem)
	api.PATCH("/menu-items/:id", catalog.UpdateMenuItem)
	api.DELETE("/menu-items/:id", catalog.DeleteMenuItem)

	api.GET("/groups/manager/users", groups.ManagerMembers)
	api.POST("/groups/manager/users", groups.AddManager)
	api.DELETE("/groups/manager/users/:id", groups.RemoveManager)
	api.GET("/groups/delivery-crew/users", groups.DeliveryCrewMembers)
	api.POST("/groups/delivery-crew/users", groups.AddDeliveryCrew)
	api.DELETE("/groups/delivery-crew/users/:id", groups.RemoveDeliveryCrew)

	api.GET("/cart/menu-items", cart.GetCart)
	api.POST("/cart/menu-items", cart.AddToCart)
	api.DELETE("/cart/menu-items", cart.ClearCart)

	api.GET("/orders", order.ListOrders)
	api.POST("/orders", order.CreateOrder)
	api.GET("/orders/:id", order.GetOrder)
	api.PUT("/orders/:id", order.UpdateOrder)
	api.PATCH("/orders/:id", order.UpdateOrder)
	api.DELETE("/orders/:id", order.DeleteOrder)
}

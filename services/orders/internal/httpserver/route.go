package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	OrderHandler *OrderHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	orders := e.Group("/ordenes")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.POST("/completa", d.OrderHandler.CreateCompleteOrder)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder)
	orders.DELETE("/:id", d.OrderHandler.DeleteOrder)

	orders.GET("/:id/detalles", d.OrderHandler.ListLines)
	orders.POST("/:id/detalles", d.OrderHandler.AddLine)
	orders.PUT("/:id/detalles/:detalleId", d.OrderHandler.UpdateLine)
	orders.DELETE("/:id/detalles/:detalleId", d.OrderHandler.DeleteLine)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/compras-io/compras/gateway/internal/middleware"
)

type Deps struct {
	OrdersURL    string
	ProductsURL  string
	SuppliersURL string
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, m := range middleware.Common() {
		e.Use(m)
	}

	ordersProxy, err := newProxy(d.OrdersURL, "/api")
	if err != nil {
		return err
	}

	productsProxy, err := newProxy(d.ProductsURL, "/api")
	if err != nil {
		return err
	}

	suppliersProxy, err := newProxy(d.SuppliersURL, "/api")
	if err != nil {
		return err
	}

	api := e.Group("/api")

	api.Any("/ordenes", ordersProxy)
	api.Any("/ordenes/*", ordersProxy)
	api.Any("/productos", productsProxy)
	api.Any("/productos/*", productsProxy)
	api.Any("/proveedores", suppliersProxy)
	api.Any("/proveedores/*", suppliersProxy)

	return nil
}

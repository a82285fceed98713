package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	SupplierHandler *SupplierHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	suppliers := e.Group("/proveedores")
	suppliers.GET("", d.SupplierHandler.ListSuppliers)
	suppliers.GET("/:id", d.SupplierHandler.GetSupplier)
	suppliers.POST("", d.SupplierHandler.CreateSupplier)
	suppliers.PUT("/:id", d.SupplierHandler.UpdateSupplier)
	suppliers.DELETE("/:id", d.SupplierHandler.DeleteSupplier)
}

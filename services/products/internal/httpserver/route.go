package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ProductHandler *ProductHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	products := e.Group("/productos")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/proveedor/:proveedorId", d.ProductHandler.ListProductsBySupplier)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)
}

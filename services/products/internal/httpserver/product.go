package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/compras-io/compras/pkg/events"
	"github.com/compras-io/compras/pkg/logging"
	"github.com/compras-io/compras/services/products/internal/service"
	"github.com/compras-io/compras/services/products/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Producer *events.Producer
}

func (h *ProductHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "error", err)
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	var supplierID uint
	if v := c.QueryParam("proveedorId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			l.Warn("list_products_error", "status", 400, "reason", "proveedorId is not an integer", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "proveedorId is not an integer")
		}
		supplierID = uint(id)
	}

	products, err := h.Svc.ListProducts(ctx, supplierID)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	l.Info("list_products_success", "count", len(products))
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) ListProductsBySupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products_by_supplier")

	supplierID, err := parseID(c, "proveedorId")
	if err != nil {
		l.Warn("list_products_by_supplier_error", "status", 400, "reason", "proveedorId is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "proveedorId is not an integer")
	}

	products, err := h.Svc.ListProducts(ctx, supplierID)
	if err != nil {
		l.Error("list_products_by_supplier_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.SaveProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.publish(c, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})
	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.SaveProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("update_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("update_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	h.publish(c, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})
	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

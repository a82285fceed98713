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
	"github.com/compras-io/compras/services/suppliers/internal/service"
	"github.com/compras-io/compras/services/suppliers/internal/transport"
)

type SupplierHTTP struct {
	Svc      *service.SupplierService
	Producer *events.Producer
}

func (h *SupplierHTTP) publish(c echo.Context, key string, event map[string]any) {
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

func (h *SupplierHTTP) GetSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.get_supplier")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_supplier_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	supplier, err := h.Svc.GetSupplier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_supplier_error", "status", 404, "reason", "supplier not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		l.Error("get_supplier_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get supplier")
	}

	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHTTP) ListSuppliers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.list_suppliers")

	suppliers, err := h.Svc.ListSuppliers(ctx)
	if err != nil {
		l.Error("list_suppliers_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list suppliers")
	}

	l.Info("list_suppliers_success", "count", len(suppliers))
	return c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHTTP) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.create_supplier")

	var req transport.SaveSupplierRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_supplier_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	supplier, err := h.Svc.CreateSupplier(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_supplier_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_supplier_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create supplier")
	}

	h.publish(c, strconv.FormatUint(uint64(supplier.ID), 10), map[string]any{
		"type":        "supplier_created",
		"supplier_id": supplier.ID,
		"name":        supplier.Name,
	})
	l.Info("create_supplier_success", "supplier_id", supplier.ID)
	return c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHTTP) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.update_supplier")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_supplier_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.SaveSupplierRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_supplier_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	supplier, err := h.Svc.UpdateSupplier(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("update_supplier_error", "status", 404, "reason", "supplier not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_supplier_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("update_supplier_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update supplier")
		}
	}

	h.publish(c, strconv.FormatUint(uint64(supplier.ID), 10), map[string]any{
		"type":        "supplier_updated",
		"supplier_id": supplier.ID,
		"name":        supplier.Name,
	})
	l.Info("update_supplier_success", "supplier_id", supplier.ID)
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHTTP) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "supplier.delete_supplier")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_supplier_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteSupplier(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_supplier_error", "status", 404, "reason", "supplier not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		l.Error("delete_supplier_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete supplier")
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":        "supplier_deleted",
		"supplier_id": id,
	})
	l.Info("delete_supplier_success", "supplier_id", id)
	return c.NoContent(http.StatusNoContent)
}

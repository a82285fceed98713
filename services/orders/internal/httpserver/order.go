package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/compras-io/compras/pkg/events"
	"github.com/compras-io/compras/pkg/logging"
	"github.com/compras-io/compras/services/orders/internal/service"
	"github.com/compras-io/compras/services/orders/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) publish(c echo.Context, key string, event map[string]any) {
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

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	orders, err := h.Svc.ListOrders(ctx, limit)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	l.Info("list_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	h.publish(c, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":        "order_created",
		"order_id":    order.ID,
		"supplier_id": order.SupplierID,
		"total":       order.Total,
	})
	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

// CreateCompleteOrder handles POST /ordenes/completa: one order plus all of
// its lines created atomically.
func (h *OrderHTTP) CreateCompleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_complete_order")

	var req transport.CreateCompleteOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_complete_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateCompleteOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_complete_order_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_complete_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	h.publish(c, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":        "order_created",
		"order_id":    order.ID,
		"supplier_id": order.SupplierID,
		"total":       order.Total,
		"lines":       len(order.Lines),
	})
	l.Info("create_complete_order_success", "order_id", order.ID, "lines", len(order.Lines))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrder(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_order_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("update_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order")
		}
	}

	l.Info("update_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("delete_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order")
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":     "order_deleted",
		"order_id": id,
	})
	l.Info("delete_order_success", "order_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) ListLines(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_lines")

	orderID, err := parseID(c, "id")
	if err != nil {
		l.Warn("list_lines_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	lines, err := h.Svc.ListLines(ctx, orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("list_lines_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("list_lines_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list order lines")
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *OrderHTTP) AddLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_line")

	orderID, err := parseID(c, "id")
	if err != nil {
		l.Warn("add_line_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.SaveLineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_line_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, err := h.Svc.AddLine(ctx, orderID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_line_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_line_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("add_line_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add order line")
		}
	}

	l.Info("add_line_success", "order_id", orderID, "line_id", line.ID)
	return c.JSON(http.StatusCreated, line)
}

func (h *OrderHTTP) UpdateLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_line")

	orderID, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_line_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	lineID, err := parseID(c, "detalleId")
	if err != nil {
		l.Warn("update_line_error", "status", 400, "reason", "line id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "line id is not an integer")
	}

	var req transport.SaveLineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_line_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	line, err := h.Svc.UpdateLine(ctx, orderID, lineID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_line_error", "status", 404, "reason", "order or line not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order or line not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_line_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		default:
			l.Error("update_line_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order line")
		}
	}

	l.Info("update_line_success", "order_id", orderID, "line_id", line.ID)
	return c.JSON(http.StatusOK, line)
}

func (h *OrderHTTP) DeleteLine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_line")

	orderID, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_line_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	lineID, err := parseID(c, "detalleId")
	if err != nil {
		l.Warn("delete_line_error", "status", 400, "reason", "line id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "line id is not an integer")
	}

	if err := h.Svc.DeleteLine(ctx, orderID, lineID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_line_error", "status", 404, "reason", "order or line not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order or line not found")
		}
		l.Error("delete_line_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order line")
	}

	l.Info("delete_line_success", "order_id", orderID, "line_id", lineID)
	return c.NoContent(http.StatusNoContent)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/compras-io/compras/services/orders/internal/models"
	"github.com/compras-io/compras/services/orders/internal/transport"
)

var (
	ErrValidation = errors.New("validation")     // 400
	ErrNotFound   = errors.New("not found")      // 404
	ErrWorkflow   = errors.New("order workflow") // 500, wraps the storage cause
)

const DefaultListLimit = 20

// OrderStore is the persistence contract for the order aggregate.
// FindOrderByID returns the complete aggregate (order plus lines, lines
// sorted by id). Transact runs fn against a store bound to one database
// transaction; if fn returns an error every write inside it is rolled back.
type OrderStore interface {
	SaveOrder(ctx context.Context, order *models.PurchaseOrder) error
	FindOrderByID(ctx context.Context, id uint) (*models.PurchaseOrder, error)
	ListOrders(ctx context.Context, limit int) ([]models.PurchaseOrder, error)
	DeleteOrder(ctx context.Context, order *models.PurchaseOrder) error
	OrderExists(ctx context.Context, id uint) (bool, error)

	SaveLine(ctx context.Context, line *models.OrderLine) error
	FindLineByID(ctx context.Context, id uint) (*models.OrderLine, error)
	FindLinesByOrderID(ctx context.Context, orderID uint) ([]models.OrderLine, error)
	DeleteLine(ctx context.Context, line *models.OrderLine) error

	Transact(ctx context.Context, fn func(OrderStore) error) error
}

type OrderService struct {
	Store OrderStore
}

// CreateCompleteOrder creates one order and all of its lines in a single
// transaction. The total is computed from the request before anything is
// written and stays frozen afterward; it is never re-derived from the
// persisted lines.
func (svc *OrderService) CreateCompleteOrder(ctx context.Context, req transport.CreateCompleteOrderRequest) (*models.PurchaseOrder, error) {
	if req.SupplierID == nil {
		return nil, fmt.Errorf("%w: proveedorId required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one product required", ErrValidation)
	}

	total := decimal.Zero
	lineTotals := make([]decimal.Decimal, len(req.Items))
	for i := range req.Items {
		if err := validateLine(req.Items[i].ProductID, req.Items[i].Quantity, req.Items[i].UnitPrice); err != nil {
			return nil, err
		}
		lineTotals[i] = req.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(req.Items[i].Quantity)))
		total = total.Add(lineTotals[i])
	}

	order := &models.PurchaseOrder{
		SupplierID: *req.SupplierID,
		Total:      total,
		Active:     true,
	}

	err := svc.Store.Transact(ctx, func(tx OrderStore) error {
		if err := tx.SaveOrder(ctx, order); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		for i := range req.Items {
			line := models.OrderLine{
				OrderID:   order.ID,
				ProductID: req.Items[i].ProductID,
				Quantity:  req.Items[i].Quantity,
				UnitPrice: req.Items[i].UnitPrice,
				LineTotal: lineTotals[i],
			}
			if err := tx.SaveLine(ctx, &line); err != nil {
				// rollback removes the order shell and any lines already written
				return fmt.Errorf("%w: save line for product %d: %w", ErrWorkflow, line.ProductID, err)
			}
			order.Lines = append(order.Lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (svc *OrderService) ListOrders(ctx context.Context, limit int) ([]models.PurchaseOrder, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return svc.Store.ListOrders(ctx, limit)
}

func (svc *OrderService) GetOrder(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	return svc.Store.FindOrderByID(ctx, id)
}

func (svc *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.PurchaseOrder, error) {
	if req.SupplierID == 0 {
		return nil, fmt.Errorf("%w: proveedorId required", ErrValidation)
	}
	if req.Total.IsNegative() {
		return nil, fmt.Errorf("%w: total must be >= 0", ErrValidation)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	order := &models.PurchaseOrder{
		SupplierID: req.SupplierID,
		Total:      req.Total,
		Active:     active,
	}
	if err := svc.Store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (svc *OrderService) UpdateOrder(ctx context.Context, id uint, req transport.UpdateOrderRequest) (*models.PurchaseOrder, error) {
	if req.SupplierID == 0 {
		return nil, fmt.Errorf("%w: proveedorId required", ErrValidation)
	}
	if req.Total.IsNegative() {
		return nil, fmt.Errorf("%w: total must be >= 0", ErrValidation)
	}

	order, err := svc.Store.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.SupplierID = req.SupplierID
	order.Total = req.Total
	order.Active = req.Active

	if err := svc.Store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (svc *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	order, err := svc.Store.FindOrderByID(ctx, id)
	if err != nil {
		return err
	}
	return svc.Store.DeleteOrder(ctx, order)
}

func (svc *OrderService) ListLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	if err := svc.requireOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return svc.Store.FindLinesByOrderID(ctx, orderID)
}

// AddLine computes line_total server-side; the stored value does not change
// afterward even if the product price does.
func (svc *OrderService) AddLine(ctx context.Context, orderID uint, req transport.SaveLineRequest) (*models.OrderLine, error) {
	if err := validateLine(req.ProductID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}
	if err := svc.requireOrder(ctx, orderID); err != nil {
		return nil, err
	}

	line := &models.OrderLine{
		OrderID:   orderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		LineTotal: req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}
	if err := svc.Store.SaveLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (svc *OrderService) UpdateLine(ctx context.Context, orderID, lineID uint, req transport.SaveLineRequest) (*models.OrderLine, error) {
	if err := validateLine(req.ProductID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	line, err := svc.findOrderLine(ctx, orderID, lineID)
	if err != nil {
		return nil, err
	}

	line.ProductID = req.ProductID
	line.Quantity = req.Quantity
	line.UnitPrice = req.UnitPrice
	line.LineTotal = req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	if err := svc.Store.SaveLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (svc *OrderService) DeleteLine(ctx context.Context, orderID, lineID uint) error {
	line, err := svc.findOrderLine(ctx, orderID, lineID)
	if err != nil {
		return err
	}
	return svc.Store.DeleteLine(ctx, line)
}

func (svc *OrderService) requireOrder(ctx context.Context, orderID uint) error {
	ok, err := svc.Store.OrderExists(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return nil
}

func (svc *OrderService) findOrderLine(ctx context.Context, orderID, lineID uint) (*models.OrderLine, error) {
	if err := svc.requireOrder(ctx, orderID); err != nil {
		return nil, err
	}
	line, err := svc.Store.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line.OrderID != orderID {
		return nil, fmt.Errorf("%w: line %d does not belong to order %d", ErrNotFound, lineID, orderID)
	}
	return line, nil
}

func validateLine(productID uint, quantity int, unitPrice decimal.Decimal) error {
	if productID == 0 {
		return fmt.Errorf("%w: productoId required", ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: cantidad must be >= 1", ErrValidation)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: precioUnitario must be >= 0", ErrValidation)
	}
	return nil
}

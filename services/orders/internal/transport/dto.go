package transport

import "github.com/shopspring/decimal"

type OrderItem struct {
	ProductID uint            `json:"productoId"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
}

// SupplierID is a pointer so a missing/null proveedorId is distinguishable
// from 0.
type CreateCompleteOrderRequest struct {
	SupplierID *uint       `json:"proveedorId"`
	Items      []OrderItem `json:"productos"`
}

type CreateOrderRequest struct {
	SupplierID uint            `json:"proveedorId"`
	Total      decimal.Decimal `json:"total"`
	Active     *bool           `json:"estado"`
}

type UpdateOrderRequest struct {
	SupplierID uint            `json:"proveedorId"`
	Total      decimal.Decimal `json:"total"`
	Active     bool            `json:"estado"`
}

type SaveLineRequest struct {
	ProductID uint            `json:"productoId"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
}

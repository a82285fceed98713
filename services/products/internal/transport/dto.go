package transport

import "github.com/shopspring/decimal"

type SaveProductRequest struct {
	Name          string          `json:"nombre"`
	UnitPrice     decimal.Decimal `json:"precioUnitario"`
	PurchasePrice decimal.Decimal `json:"precioCompra"`
	Stock         int             `json:"stock"`
	SupplierID    uint            `json:"proveedorId"`
	Active        *bool           `json:"estado"`
}

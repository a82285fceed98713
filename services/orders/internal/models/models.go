package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the aggregate root. Lines are owned by the order and are
// always loaded with it; Total is frozen at creation time and is not
// re-derived from the lines afterward.
//
// JSON field names follow the wire format the React frontend already speaks.
type PurchaseOrder struct {
	ID         uint            `gorm:"primaryKey"                      json:"id"`
	SupplierID uint            `gorm:"index;not null"                  json:"proveedorId"`
	Total      decimal.Decimal `gorm:"type:numeric(10,2);not null"     json:"total"`
	Active     bool            `gorm:"not null;default:true"           json:"estado"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"detalles"`
	CreatedAt  time.Time       `json:"fechaCreacion"`
	UpdatedAt  time.Time       `json:"fechaActualizacion"`
}

// OrderLine holds LineTotal as computed when the line was written, so later
// price changes never rewrite history.
type OrderLine struct {
	ID        uint            `gorm:"primaryKey"                   json:"id"`
	OrderID   uint            `gorm:"index;not null"               json:"ordenCompraId"`
	ProductID uint            `gorm:"not null"                     json:"productoId"`
	Quantity  int             `gorm:"not null;check:quantity > 0"  json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"precioUnitario"`
	LineTotal decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"precioTotal"`
	CreatedAt time.Time       `json:"fechaCreacion"`
	UpdatedAt time.Time       `json:"fechaActualizacion"`
}

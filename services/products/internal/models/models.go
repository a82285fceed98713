package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey"                   json:"id"`
	Name          string          `gorm:"size:100;not null"            json:"nombre"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"precioUnitario"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"precioCompra"`
	Stock         int             `gorm:"not null"                     json:"stock"`
	SupplierID    uint            `gorm:"index;not null"               json:"proveedorId"`
	Active        bool            `gorm:"not null;default:true"        json:"estado"`
	CreatedAt     time.Time       `json:"fechaCreacion"`
	UpdatedAt     time.Time       `json:"fechaActualizacion"`
}

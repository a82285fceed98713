package models

import "time"

// Supplier is a vendor the company buys from. RUC is the tax id used
// on invoices; inactive suppliers stay in the table but are hidden
// from listings.
type Supplier struct {
	ID        uint      `gorm:"primaryKey"                json:"id"`
	Name      string    `gorm:"size:255;not null"         json:"nombre"`
	RUC       string    `gorm:"size:32;not null;index"    json:"ruc"`
	Address   string    `gorm:"size:255"                  json:"direccion"`
	Phone     string    `gorm:"size:32"                   json:"telefono"`
	Active    bool      `gorm:"not null;default:true"     json:"estado"`
	CreatedAt time.Time `json:"fechaCreacion"`
	UpdatedAt time.Time `json:"fechaActualizacion"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// IngresoLote is one truck arrival. A lote groups multiple supplier/product
// items that came in on the same truck.
type IngresoLote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      time.Time `gorm:"index;not null"`
	TruckID   string    `gorm:"index;not null"` // placa del camión, uppercased
	CreatedAt time.Time

	Items []IngresoItem `gorm:"foreignKey:IngresoLoteID;constraint:OnDelete:CASCADE"`
}

func (IngresoLote) TableName() string { return "ingreso_lotes" }

// IngresoItem is one supplier's delivery inside a lote. Quantities are stored
// in both units and cost is always normalized to per-java; the conversion
// factor used at entry time is persisted so historical rows stay consistent
// even if the product's factor changes later.
type IngresoItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngresoLoteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierName     string    `gorm:"not null"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalKg          float64   `gorm:"not null"`
	ConversionFactor float64   `gorm:"not null"`
	TotalJavas       float64   `gorm:"not null"`
	CostPerJava      float64   `gorm:"not null"`
	TotalCost        float64   `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (IngresoItem) TableName() string { return "ingreso_items" }

package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. ConversionFactor is the kilograms held by one
// java of this product; every quantity derivation in ventas/ingresos reads it
// from here — never from a hardcoded default.
type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string    `gorm:"index;not null"`
	Type             string    `gorm:"not null"` // e.g. Kion
	Quality          string    `gorm:"not null"` // e.g. Primera, Segunda
	ConversionFactor float64   `gorm:"not null;default:20"` // kg per java
	CreatedAt        time.Time
	UpdatedAt        time.Time

	VentaItems   []VentaItem   `gorm:"foreignKey:ProductID"`
	IngresoItems []IngresoItem `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// ProductType — tipos de producto configurables (ej: Kion, Cúrcuma).
type ProductType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (ProductType) TableName() string { return "product_types" }

// ProductQuality — calidades de producto configurables (ej: Primera, Segunda).
type ProductQuality struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (ProductQuality) TableName() string { return "product_qualities" }

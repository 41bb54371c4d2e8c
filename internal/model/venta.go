package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de venta.
const (
	VentaCaja   = "CAJA"   // contado
	VentaPedido = "PEDIDO" // crédito — requiere cliente, acumula deuda
)

type Venta struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time  `gorm:"index;not null"`
	Type        string     `gorm:"type:varchar(10);not null"` // CAJA | PEDIDO
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsPrinted   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User   *User       `gorm:"foreignKey:UserID"`
	Client *Client     `gorm:"foreignKey:ClientID"`
	Items  []VentaItem `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem carries the canonical resolved quantities for one sold line:
// the user enters kg, the javas are derived at the product's factor, and the
// factor itself is persisted for historical consistency.
type VentaItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityKg       float64         `gorm:"not null"`
	QuantityJavas    float64         `gorm:"not null"`
	ConversionFactor float64         `gorm:"not null"`
	PricePerKg       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (VentaItem) TableName() string { return "venta_items" }

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a credit customer. CurrentDebt accrues with each venta PEDIDO and
// decreases with payments; it is never allowed to go below zero.
type Client struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"not null"`
	WhatsappNumber *string
	Email          *string
	CurrentDebt    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Ventas   []Venta         `gorm:"foreignKey:ClientID"`
	Payments []ClientPayment `gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string { return "clients" }

// ClientPayment registra pagos/abonos de clientes para reducir deuda.
type ClientPayment struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date     time.Time       `gorm:"not null"`
	Notes    *string

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (ClientPayment) TableName() string { return "client_payments" }

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaItemRequest: sales are always entered in kg at a price per kg; javas
// are derived server-side from the product's conversion factor.
type VentaItemRequest struct {
	ProductID  string          `json:"product_id"   validate:"required,uuid"`
	QuantityKg float64         `json:"quantity_kg"  validate:"required,gt=0"`
	PricePerKg decimal.Decimal `json:"price_per_kg" validate:"required"`
}

type CrearVentaRequest struct {
	Type     string             `json:"type"      validate:"required,oneof=CAJA PEDIDO"`
	ClientID *string            `json:"client_id" validate:"omitempty,uuid"`
	Items    []VentaItemRequest `json:"items"     validate:"required,min=1,dive"`
}

type ActualizarVentaRequest struct {
	ClientID *string            `json:"client_id" validate:"omitempty,uuid"`
	Items    []VentaItemRequest `json:"items"     validate:"required,min=1,dive"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha     string `form:"fecha"`      // YYYY-MM-DD exact day
	StartDate string `form:"start_date"` // YYYY-MM-DD range start
	EndDate   string `form:"end_date"`   // YYYY-MM-DD range end
	ClientID  string `form:"client_id"`
	Type      string `form:"type"` // CAJA | PEDIDO
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=100"`

	// UserID and the day bounds are set by the handler from the JWT claims,
	// not bound from the query string: vendedores only see their own sales of
	// the current business day. The bounds come from the business-timezone
	// clock so the cutoff is the local midnight, not the DB session's.
	UserID   string    `form:"-"`
	DayStart time.Time `form:"-"`
	DayEnd   time.Time `form:"-"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	QuantityKg       float64         `json:"quantity_kg"`
	QuantityJavas    float64         `json:"quantity_javas"`
	ConversionFactor float64         `json:"conversion_factor"`
	PricePerKg       decimal.Decimal `json:"price_per_kg"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	Type        string              `json:"type"`
	ClientID    *string             `json:"client_id"`
	ClientName  *string             `json:"client_name"`
	UserID      string              `json:"user_id"`
	UserName    string              `json:"user_name"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	IsPrinted   bool                `json:"is_printed"`
	Items       []VentaItemResponse `json:"items"`
	// Debt movement for PEDIDO sales; nil for CAJA
	PreviousDebt *decimal.Decimal `json:"previous_debt"`
	NewDebt      *decimal.Decimal `json:"new_debt"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

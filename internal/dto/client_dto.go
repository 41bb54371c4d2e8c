package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=120"`
	WhatsappNumber *string `json:"whatsapp_number"`
	Email          *string `json:"email" validate:"omitempty,email"`
}

type ActualizarClienteRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=120"`
	WhatsappNumber *string `json:"whatsapp_number"`
	Email          *string `json:"email" validate:"omitempty,email"`
}

// RegistrarPagoRequest registra un abono que reduce la deuda del cliente.
type RegistrarPagoRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Notes  *string         `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	WhatsappNumber *string         `json:"whatsapp_number"`
	Email          *string         `json:"email"`
	CurrentDebt    decimal.Decimal `json:"current_debt"`
}

type PagoClienteResponse struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Notes      *string         `json:"notes"`
	DeudaNueva decimal.Decimal `json:"deuda_nueva"`
}

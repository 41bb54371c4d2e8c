package dto

import "github.com/shopspring/decimal"

// ─── Reporte de ganancias ────────────────────────────────────────────────────

type ReporteFilter struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD; empty = today
	EndDate   string `form:"end_date"`
}

// GananciaProductoResponse: revenue is what was sold, cost values the sold
// javas at the product's weighted-average intake cost.
type GananciaProductoResponse struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	VendidoKg         float64         `json:"vendido_kg"`
	VendidoJavas      float64         `json:"vendido_javas"`
	Revenue           decimal.Decimal `json:"revenue"`
	CostoPromedioJava float64         `json:"costo_promedio_java"`
	Cost              decimal.Decimal `json:"cost"`
	Profit            decimal.Decimal `json:"profit"`
	MarginPct         decimal.Decimal `json:"margin_pct"`
}

type ReporteGananciasResponse struct {
	StartDate   string                     `json:"start_date"`
	EndDate     string                     `json:"end_date"`
	Items       []GananciaProductoResponse `json:"items"`
	TotalProfit decimal.Decimal            `json:"total_profit"`
	TotalRevenue decimal.Decimal           `json:"total_revenue"`
	TotalCost   decimal.Decimal            `json:"total_cost"`
}

// ─── Resumen diario ──────────────────────────────────────────────────────────

type ResumenDiarioResponse struct {
	Fecha           string          `json:"fecha"`
	NumVentas       int64           `json:"num_ventas"`
	TotalCaja       decimal.Decimal `json:"total_caja"`
	TotalPedido     decimal.Decimal `json:"total_pedido"`
	TotalGeneral    decimal.Decimal `json:"total_general"`
	DeudaPendiente  decimal.Decimal `json:"deuda_pendiente"`
}

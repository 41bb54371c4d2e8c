package dto

// StockResponse is the summary row of GET /v1/ingresos/stock/disponible.
type StockResponse struct {
	ProductID           string  `json:"product_id"`
	ProductName         string  `json:"product_name"`
	TotalJavasAvailable float64 `json:"total_javas_available"`
}

// StockDetalleResponse carries the full per-product stock picture with costs.
// All values rounded to 2 decimals for display.
type StockDetalleResponse struct {
	ProductID            string  `json:"product_id"`
	ProductName          string  `json:"product_name"`
	TotalIngresoKg       float64 `json:"total_ingreso_kg"`
	TotalIngresoJavas    float64 `json:"total_ingreso_javas"`
	TotalVendidoKg       float64 `json:"total_vendido_kg"`
	TotalVendidoJavas    float64 `json:"total_vendido_javas"`
	StockDisponibleKg    float64 `json:"stock_disponible_kg"`
	StockDisponibleJavas float64 `json:"stock_disponible_javas"`
	CostoPromedioJava    float64 `json:"costo_promedio_java"`
}

package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// IngresoItemRequest is one supplier/product row of a lote. The quantity and
// the cost each carry their own unit tag, so the four input-mode combinations
// (kg|java × costo-por-kg|costo-por-java) all resolve to the same canonical
// triple (total_kg, total_javas, total_cost).
type IngresoItemRequest struct {
	SupplierName string  `json:"supplier_name" validate:"required,min=1"`
	ProductID    string  `json:"product_id"    validate:"required,uuid"`
	Quantity     float64 `json:"quantity"      validate:"required,gt=0"`
	QuantityUnit string  `json:"quantity_unit" validate:"required,oneof=KG JAVA"`
	CostInput    float64 `json:"cost_input"    validate:"required,gt=0"`
	CostUnit     string  `json:"cost_unit"     validate:"required,oneof=KG JAVA"`
	// ConversionFactor overrides the product's stored factor for this row only
	ConversionFactor *float64 `json:"conversion_factor" validate:"omitempty,gt=0"`
}

type CrearIngresoLoteRequest struct {
	TruckID string               `json:"truck_id" validate:"required,min=3"`
	Items   []IngresoItemRequest `json:"items"    validate:"required,min=1,dive"`
}

type IngresoFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngresoItemResponse struct {
	ID               string  `json:"id"`
	SupplierName     string  `json:"supplier_name"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	TotalKg          float64 `json:"total_kg"`
	ConversionFactor float64 `json:"conversion_factor"`
	TotalJavas       float64 `json:"total_javas"`
	CostPerJava      float64 `json:"cost_per_java"`
	TotalCost        float64 `json:"total_cost"`
}

type IngresoLoteResponse struct {
	ID         string                `json:"id"`
	Date       string                `json:"date"`
	TruckID    string                `json:"truck_id"`
	Items      []IngresoItemResponse `json:"items"`
	TotalKg    float64               `json:"total_kg"`
	TotalJavas float64               `json:"total_javas"`
	TotalCost  float64               `json:"total_cost"`
}

type IngresoLoteListResponse struct {
	Data  []IngresoLoteResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Inventory snapshot ──────────────────────────────────────────────────────

type CrearSnapshotRequest struct {
	PhysicalCount       float64 `json:"physical_count"        validate:"min=0"`
	SystemExpectedCount float64 `json:"system_expected_count" validate:"min=0"`
	Difference          float64 `json:"difference"`
}

type SnapshotResponse struct {
	ID                  string  `json:"id"`
	Date                string  `json:"date"`
	PhysicalCount       float64 `json:"physical_count"`
	SystemExpectedCount float64 `json:"system_expected_count"`
	Difference          float64 `json:"difference"`
}

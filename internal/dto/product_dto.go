package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Name             string  `json:"name"              validate:"required,min=2,max=120"`
	Type             string  `json:"type"              validate:"required"`
	Quality          string  `json:"quality"           validate:"required"`
	ConversionFactor float64 `json:"conversion_factor" validate:"required,gt=0"` // kg per java
}

type ActualizarProductoRequest struct {
	Name             *string  `json:"name"              validate:"omitempty,min=2,max=120"`
	Type             *string  `json:"type"`
	Quality          *string  `json:"quality"`
	ConversionFactor *float64 `json:"conversion_factor" validate:"omitempty,gt=0"`
}

type CrearCatalogoRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Quality          string  `json:"quality"`
	ConversionFactor float64 `json:"conversion_factor"`
}

type CatalogoResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UsageCountResponse struct {
	Count int64 `json:"count"`
}

package dto

import "time"

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Supplier  string  `json:"supplier,omitempty"`
	Origin    string  `json:"origin,omitempty"`
	Certified bool    `json:"certified"`
	CostCents *int64  `json:"costCents,omitempty"`
	Currency  *string `json:"currency,omitempty"`
}

// UpdateMaterialRequest entrada para reemplazar los datos de un material (PUT).
type UpdateMaterialRequest = CreateMaterialRequest

// MaterialFilterRequest filtros de query para GET /api/materials.
type MaterialFilterRequest struct {
	Q         string `query:"q"`
	Supplier  string `query:"supplier"`
	Origin    string `query:"origin"`
	Certified *bool  `query:"certified"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Supplier  *string   `json:"supplier"`
	Origin    *string   `json:"origin"`
	Certified bool      `json:"certified"`
	CostCents *int64    `json:"costCents"`
	Currency  *string   `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

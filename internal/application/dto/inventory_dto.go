package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/inventory/movements.
// La clave de idempotencia puede venir aquí o en el header Idempotency-Key.
type CreateMovementRequest struct {
	MaterialID     string          `json:"materialId"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string          `json:"id"`
	MaterialID     string          `json:"materialId"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         *string         `json:"reason"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// MaterialStockResponse stock derivado de un material.
type MaterialStockResponse struct {
	MaterialID string          `json:"materialId"`
	Stock      decimal.Decimal `json:"stock"`
}

// UpsertThresholdRequest body para PUT /api/materials/:id/threshold.
type UpsertThresholdRequest struct {
	MinStock *decimal.Decimal `json:"minStock"`
}

// ThresholdResponse umbral configurado de un material.
type ThresholdResponse struct {
	MaterialID string          `json:"materialId"`
	MinStock   decimal.Decimal `json:"minStock"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// LowStockAlertResponse material por debajo de su stock mínimo.
type LowStockAlertResponse struct {
	MaterialID string          `json:"materialId"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Stock      decimal.Decimal `json:"stock"`
	MinStock   decimal.Decimal `json:"minStock"`
}

// MaterialStatusResponse estado de stock de un material para el panel (badge BAJO/OK).
type MaterialStatusResponse struct {
	MaterialID string           `json:"materialId"`
	Stock      decimal.Decimal  `json:"stock"`
	MinStock   *decimal.Decimal `json:"minStock"`
	Status     string           `json:"status"` // NO_THRESHOLD | OK | LOW
}

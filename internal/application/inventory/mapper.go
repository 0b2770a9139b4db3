package inventory

import (
	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// ToMovementResponse convierte un movimiento del libro al DTO de salida.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Type:       string(m.Type),
		Quantity:   m.Quantity,
		CreatedAt:  m.CreatedAt,
	}
	if m.Reason != "" {
		reason := m.Reason
		out.Reason = &reason
	}
	if m.IdempotencyKey != "" {
		key := m.IdempotencyKey
		out.IdempotencyKey = &key
	}
	return out
}

// ToMovementResponses convierte una lista de movimientos (nunca devuelve nil).
func ToMovementResponses(list []*entity.InventoryMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ToThresholdResponse convierte un umbral al DTO de salida.
func ToThresholdResponse(t *entity.MaterialStockThreshold) dto.ThresholdResponse {
	return dto.ThresholdResponse{MaterialID: t.MaterialID, MinStock: t.MinStock, UpdatedAt: t.UpdatedAt}
}

// ToLowStockAlertResponses convierte el conjunto de alertas (nunca devuelve nil).
func ToLowStockAlertResponses(alerts []entity.LowStockAlert) []dto.LowStockAlertResponse {
	out := make([]dto.LowStockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.LowStockAlertResponse{
			MaterialID: a.MaterialID,
			Name:       a.Name,
			Unit:       a.Unit,
			Stock:      a.Stock,
			MinStock:   a.MinStock,
		})
	}
	return out
}

// ToMaterialStockResponse convierte el stock proyectado al DTO de salida.
func ToMaterialStockResponse(s *entity.MaterialStock) dto.MaterialStockResponse {
	return dto.MaterialStockResponse{MaterialID: s.MaterialID, Stock: s.Stock}
}

// ToMaterialStatusResponse convierte el estado de stock al DTO de salida.
func ToMaterialStatusResponse(s *entity.MaterialStockStatus) dto.MaterialStatusResponse {
	return dto.MaterialStatusResponse{
		MaterialID: s.MaterialID,
		Stock:      s.Stock,
		MinStock:   s.MinStock,
		Status:     string(s.Status),
	}
}

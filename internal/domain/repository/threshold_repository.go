package repository

import (
	"context"

	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// ThresholdRepository persiste a lo sumo un umbral de stock por material.
type ThresholdRepository interface {
	Upsert(ctx context.Context, threshold *entity.MaterialStockThreshold) error
	// Get devuelve (nil, nil) si el material no tiene umbral.
	Get(ctx context.Context, materialID string) (*entity.MaterialStockThreshold, error)
	// Delete es idempotente: borrar un umbral inexistente no es error.
	Delete(ctx context.Context, materialID string) error
	List(ctx context.Context) ([]*entity.MaterialStockThreshold, error)
}

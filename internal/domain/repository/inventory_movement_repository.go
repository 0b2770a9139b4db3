package repository

import (
	"context"
	"time"

	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia del libro de movimientos.
// Solo se agrega: no hay Update ni Delete. Los listados vienen en orden de creación
// (CreatedAt ascendente y, a igual CreatedAt, orden de inserción).
type InventoryMovementRepository interface {
	Append(ctx context.Context, movement *entity.InventoryMovement) error
	GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error)
	GetByIdempotencyKey(ctx context.Context, materialID, key string) (*entity.InventoryMovement, error)
	ListByMaterial(ctx context.Context, materialID string) ([]*entity.InventoryMovement, error)
	List(ctx context.Context) ([]*entity.InventoryMovement, error)
	// LastCreatedAt devuelve el CreatedAt del último movimiento del material (nil si no hay).
	LastCreatedAt(ctx context.Context, materialID string) (*time.Time, error)
	CountByMaterial(ctx context.Context, materialID string) (int, error)
}

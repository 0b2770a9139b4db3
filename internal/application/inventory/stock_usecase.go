package inventory

import (
	"context"

	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

// StockUseCase deriva el stock actual de un material plegando su libro.
// No hay caché: cada lectura vuelve a proyectar, así nunca hay datos viejos.
type StockUseCase struct {
	materialRepo repository.MaterialRepository
	movementRepo repository.InventoryMovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(materialRepo repository.MaterialRepository, movementRepo repository.InventoryMovementRepository) *StockUseCase {
	return &StockUseCase{materialRepo: materialRepo, movementRepo: movementRepo}
}

// Get devuelve el stock de un material (domain.ErrNotFound si no existe).
func (uc *StockUseCase) Get(ctx context.Context, materialID string) (*entity.MaterialStock, error) {
	materialID, err := ensureMaterial(ctx, uc.materialRepo, materialID)
	if err != nil {
		return nil, err
	}
	return uc.project(ctx, materialID)
}

func (uc *StockUseCase) project(ctx context.Context, materialID string) (*entity.MaterialStock, error) {
	movements, err := uc.movementRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	return &entity.MaterialStock{MaterialID: materialID, Stock: inventory.ProjectStock(movements)}, nil
}

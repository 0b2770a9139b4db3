package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

// DefaultAlertParallelism máximo de materiales proyectados a la vez al calcular alertas.
const DefaultAlertParallelism = 8

// AlertUseCase calcula las alertas de stock bajo y el estado por material.
// Todo se recalcula en cada lectura desde el libro y los umbrales.
type AlertUseCase struct {
	materialRepo  repository.MaterialRepository
	movementRepo  repository.InventoryMovementRepository
	thresholdRepo repository.ThresholdRepository
	parallelism   int
}

// NewAlertUseCase construye el caso de uso. parallelism <= 0 usa DefaultAlertParallelism.
func NewAlertUseCase(
	materialRepo repository.MaterialRepository,
	movementRepo repository.InventoryMovementRepository,
	thresholdRepo repository.ThresholdRepository,
	parallelism int,
) *AlertUseCase {
	if parallelism <= 0 {
		parallelism = DefaultAlertParallelism
	}
	return &AlertUseCase{
		materialRepo:  materialRepo,
		movementRepo:  movementRepo,
		thresholdRepo: thresholdRepo,
		parallelism:   parallelism,
	}
}

// LowStock devuelve los materiales con umbral cuyo stock es estrictamente menor al mínimo.
// Cada material con umbral se carga y proyecta en su propia goroutine (acotado por parallelism).
func (uc *AlertUseCase) LowStock(ctx context.Context) ([]entity.LowStockAlert, error) {
	thresholds, err := uc.thresholdRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar umbrales: %w", err)
	}
	if len(thresholds) == 0 {
		return []entity.LowStockAlert{}, nil
	}

	var mu sync.Mutex
	materials := make(map[string]*entity.Material, len(thresholds))
	stocks := make(map[string]decimal.Decimal, len(thresholds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.parallelism)
	for _, t := range thresholds {
		materialID := t.MaterialID
		g.Go(func() error {
			material, err := uc.materialRepo.GetByID(gctx, materialID)
			if err != nil {
				return fmt.Errorf("obtener material %s: %w", materialID, err)
			}
			if material == nil {
				// umbral huérfano: el material ya no existe
				return nil
			}
			movements, err := uc.movementRepo.ListByMaterial(gctx, materialID)
			if err != nil {
				return fmt.Errorf("listar movimientos de %s: %w", materialID, err)
			}
			stock := inventory.ProjectStock(movements)

			mu.Lock()
			materials[materialID] = material
			stocks[materialID] = stock
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inventory.EvaluateLowStock(materials, stocks, thresholds), nil
}

// Status devuelve el stock, el umbral y el estado (NO_THRESHOLD/OK/LOW) de un material.
func (uc *AlertUseCase) Status(ctx context.Context, materialID string) (*entity.MaterialStockStatus, error) {
	materialID, err := ensureMaterial(ctx, uc.materialRepo, materialID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	threshold, err := uc.thresholdRepo.Get(ctx, materialID)
	if err != nil {
		return nil, err
	}
	stock := inventory.ProjectStock(movements)
	out := &entity.MaterialStockStatus{
		MaterialID: materialID,
		Stock:      stock,
		Status:     inventory.ClassifyStock(stock, threshold),
	}
	if threshold != nil {
		minStock := threshold.MinStock
		out.MinStock = &minStock
	}
	return out, nil
}

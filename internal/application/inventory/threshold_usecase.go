package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

// ThresholdUseCase administra el stock mínimo (a lo sumo uno por material).
type ThresholdUseCase struct {
	txRunner      TxRunner
	materialRepo  repository.MaterialRepository
	thresholdRepo repository.ThresholdRepository
	now           func() time.Time
}

// NewThresholdUseCase construye el caso de uso.
func NewThresholdUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	thresholdRepo repository.ThresholdRepository,
) *ThresholdUseCase {
	return &ThresholdUseCase{
		txRunner:      txRunner,
		materialRepo:  materialRepo,
		thresholdRepo: thresholdRepo,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ThresholdUseCase) WithClock(now func() time.Time) *ThresholdUseCase {
	uc.now = now
	return uc
}

// Upsert crea o reemplaza el umbral del material. minStock negativo se rechaza, nunca se recorta.
func (uc *ThresholdUseCase) Upsert(ctx context.Context, materialID string, minStock decimal.Decimal) (*entity.MaterialStockThreshold, error) {
	materialID = strings.TrimSpace(materialID)
	if materialID == "" {
		return nil, fmt.Errorf("%w: materialId es requerido", domain.ErrInvalidInput)
	}
	if err := inventory.ValidateMinStock(minStock); err != nil {
		return nil, err
	}
	var out *entity.MaterialStockThreshold
	err := uc.txRunner.Run(ctx, materialID, func(
		materials repository.MaterialRepository,
		_ repository.InventoryMovementRepository,
		thresholds repository.ThresholdRepository,
	) error {
		if err := lockMaterial(ctx, materials, materialID); err != nil {
			return err
		}
		t := &entity.MaterialStockThreshold{
			MaterialID: materialID,
			MinStock:   minStock,
			UpdatedAt:  normalizeTime(uc.now()),
		}
		if err := thresholds.Upsert(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve el umbral del material, o (nil, nil) si no tiene.
func (uc *ThresholdUseCase) Get(ctx context.Context, materialID string) (*entity.MaterialStockThreshold, error) {
	materialID, err := ensureMaterial(ctx, uc.materialRepo, materialID)
	if err != nil {
		return nil, err
	}
	return uc.thresholdRepo.Get(ctx, materialID)
}

// Delete elimina el umbral. Borrar un umbral inexistente no es error.
func (uc *ThresholdUseCase) Delete(ctx context.Context, materialID string) error {
	return uc.thresholdRepo.Delete(ctx, strings.TrimSpace(materialID))
}

package memory

import (
	"context"

	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las escrituras de cada material con un mutex propio.
// No hay rollback: los callbacks validan todo antes de su única escritura final.
type TxRunner struct {
	s          *Store
	materials  *MaterialRepo
	movements  *InventoryMovementRepo
	thresholds *ThresholdRepo
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{
		s:          s,
		materials:  NewMaterialRepository(s),
		movements:  NewInventoryMovementRepository(s),
		thresholds: NewThresholdRepository(s),
	}
}

// Run toma el mutex del material y ejecuta fn. Respeta la cancelación solo antes de empezar.
func (r *TxRunner) Run(ctx context.Context, materialID string, fn func(
	materials repository.MaterialRepository,
	movements repository.InventoryMovementRepository,
	thresholds repository.ThresholdRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := r.s.lockMaterial(materialID)
	defer r.s.unlockMaterial(materialID, l)
	return fn(r.materials, r.movements, r.thresholds)
}

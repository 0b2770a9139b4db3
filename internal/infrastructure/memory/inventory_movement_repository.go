package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo libro de movimientos en memoria (slice de solo agregado).
type InventoryMovementRepo struct {
	s *Store
}

// NewInventoryMovementRepository construye el repositorio sobre el store.
func NewInventoryMovementRepository(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

// Append agrega el movimiento al final del libro.
func (r *InventoryMovementRepo) Append(_ context.Context, movement *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if movement.IdempotencyKey != "" {
		for _, m := range r.s.movements {
			if m.MaterialID == movement.MaterialID && m.IdempotencyKey == movement.IdempotencyKey {
				return fmt.Errorf("%w: idempotencyKey %q ya usada", domain.ErrConflict, movement.IdempotencyKey)
			}
		}
	}
	r.s.movements = append(r.s.movements, copyMovement(movement))
	return nil
}

func (r *InventoryMovementRepo) GetByID(_ context.Context, id string) (*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

func (r *InventoryMovementRepo) GetByIdempotencyKey(_ context.Context, materialID, key string) (*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.MaterialID == materialID && m.IdempotencyKey == key {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

// ListByMaterial devuelve una copia del libro del material en orden de inserción.
func (r *InventoryMovementRepo) ListByMaterial(_ context.Context, materialID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.InventoryMovement, 0)
	for _, m := range r.s.movements {
		if m.MaterialID == materialID {
			out = append(out, copyMovement(m))
		}
	}
	return out, nil
}

// List devuelve todos los movimientos ordenados por CreatedAt (estable respecto de la inserción).
func (r *InventoryMovementRepo) List(_ context.Context) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	out := make([]*entity.InventoryMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		out = append(out, copyMovement(m))
	}
	r.s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InventoryMovementRepo) LastCreatedAt(_ context.Context, materialID string) (*time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; m.MaterialID == materialID {
			t := m.CreatedAt
			return &t, nil
		}
	}
	return nil, nil
}

func (r *InventoryMovementRepo) CountByMaterial(_ context.Context, materialID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.movements {
		if m.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de stock en memoria (uno por material).
type ThresholdRepo struct {
	s *Store
}

// NewThresholdRepository construye el repositorio sobre el store.
func NewThresholdRepository(s *Store) *ThresholdRepo {
	return &ThresholdRepo{s: s}
}

// Upsert crea o reemplaza el umbral (último en escribir gana).
func (r *ThresholdRepo) Upsert(_ context.Context, threshold *entity.MaterialStockThreshold) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *threshold
	r.s.thresholds[threshold.MaterialID] = &c
	return nil
}

func (r *ThresholdRepo) Get(_ context.Context, materialID string) (*entity.MaterialStockThreshold, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.thresholds[materialID]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

// Delete es idempotente.
func (r *ThresholdRepo) Delete(_ context.Context, materialID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.thresholds, materialID)
	return nil
}

// List devuelve los umbrales ordenados por material.
func (r *ThresholdRepo) List(_ context.Context) ([]*entity.MaterialStockThreshold, error) {
	r.s.mu.RLock()
	out := make([]*entity.MaterialStockThreshold, 0, len(r.s.thresholds))
	for _, t := range r.s.thresholds {
		c := *t
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}

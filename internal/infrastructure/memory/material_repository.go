package memory

import (
	"context"
	"fmt"

	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo repositorio de materiales en memoria.
type MaterialRepo struct {
	s *Store
}

// NewMaterialRepository construye el repositorio sobre el store.
func NewMaterialRepository(s *Store) *MaterialRepo {
	return &MaterialRepo{s: s}
}

// Create agrega un material nuevo.
func (r *MaterialRepo) Create(_ context.Context, material *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[material.ID]; ok {
		return fmt.Errorf("%w: material %s ya existe", domain.ErrConflict, material.ID)
	}
	r.s.materials[material.ID] = copyMaterial(material)
	r.s.materialIx = append(r.s.materialIx, material.ID)
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	return copyMaterial(m), nil
}

// Lock en memoria equivale a GetByID: el bloqueo lo toma TxRunner.
func (r *MaterialRepo) Lock(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los datos de un material existente.
func (r *MaterialRepo) Update(_ context.Context, material *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[material.ID]; !ok {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, material.ID)
	}
	r.s.materials[material.ID] = copyMaterial(material)
	return nil
}

// Delete elimina un material.
func (r *MaterialRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[id]; !ok {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	delete(r.s.materials, id)
	r.s.materialIx = removeID(r.s.materialIx, id)
	return nil
}

// List devuelve los materiales en orden de creación.
func (r *MaterialRepo) List(_ context.Context) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Material, 0, len(r.s.materialIx))
	for _, id := range r.s.materialIx {
		out = append(out, copyMaterial(r.s.materials[id]))
	}
	return out, nil
}

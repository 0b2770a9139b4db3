package repository

import (
	"context"

	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// MaterialFilter filtros opcionales del listado de materiales (vacío = sin filtro).
type MaterialFilter struct {
	Query     string // contiene, sin distinguir mayúsculas, sobre el nombre
	Supplier  string
	Origin    string
	Certified *bool
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
// GetByID devuelve (nil, nil) si el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Material, error)
	// Lock toma el bloqueo de escritura del material dentro de la transacción en curso.
	// Devuelve (nil, nil) si no existe.
	Lock(ctx context.Context, id string) (*entity.Material, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, unit, supplier, origin, certified, cost_cents, currency, created_at`

// MaterialRepo implementación sobre SQLite (usable con *sql.DB o *sql.Tx).
type MaterialRepo struct {
	q querier
}

// NewMaterialRepository construye el adaptador.
func NewMaterialRepository(q querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create inserta un material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO materials (`+materialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Unit, nullString(m.Supplier), nullString(m.Origin), m.Certified,
		m.CostCents, m.Currency, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material; (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// Lock en SQLite equivale a GetByID: la transacción IMMEDIATE ya tiene el lock de escritura.
func (r *MaterialRepo) Lock(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los datos del material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE materials SET name = ?, unit = ?, supplier = ?, origin = ?, certified = ?,
			cost_cents = ?, currency = ?
		WHERE id = ?`,
		m.Name, m.Unit, nullString(m.Supplier), nullString(m.Origin), m.Certified,
		m.CostCents, m.Currency, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, m.ID)
	}
	return nil
}

// Delete elimina el material (el umbral se borra en cascada).
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM materials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: material %s", domain.ErrNotFound, id)
	}
	return nil
}

// List devuelve los materiales en orden de creación.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*entity.Material, error) {
	var (
		m         entity.Material
		supplier  sql.NullString
		origin    sql.NullString
		costCents sql.NullInt64
		currency  sql.NullString
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Unit, &supplier, &origin, &m.Certified,
		&costCents, &currency, &createdAt); err != nil {
		return nil, err
	}
	m.Supplier = supplier.String
	m.Origin = origin.String
	if costCents.Valid {
		v := costCents.Int64
		m.CostCents = &v
	}
	if currency.Valid {
		v := currency.String
		m.Currency = &v
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = t
	return &m, nil
}

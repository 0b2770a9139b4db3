package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, material_id, type, quantity, reason, idempotency_key, created_at`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// seq (BIGSERIAL) desempata movimientos con el mismo created_at.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Append persiste un movimiento del libro.
func (r *InventoryMovementRepo) Append(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MaterialID, string(m.Type), m.Quantity,
		nullIfEmpty(m.Reason), nullIfEmpty(m.IdempotencyKey), m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: idempotencyKey %q ya usada", domain.ErrConflict, m.IdempotencyKey)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: material %s no encontrado", domain.ErrNotFound, m.MaterialID)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id)
}

// GetByIdempotencyKey busca un movimiento previo con la misma clave en el material.
func (r *InventoryMovementRepo) GetByIdempotencyKey(ctx context.Context, materialID, key string) (*entity.InventoryMovement, error) {
	if !isUUID(materialID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE material_id = $1 AND idempotency_key = $2`, materialID, key)
}

func (r *InventoryMovementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByMaterial lista el libro de un material en orden de creación.
func (r *InventoryMovementRepo) ListByMaterial(ctx context.Context, materialID string) ([]*entity.InventoryMovement, error) {
	if !isUUID(materialID) {
		return []*entity.InventoryMovement{}, nil
	}
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE material_id = $1 ORDER BY created_at, seq`, materialID)
}

// List lista todos los movimientos en orden de creación.
func (r *InventoryMovementRepo) List(ctx context.Context) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements ORDER BY created_at, seq`)
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LastCreatedAt devuelve el created_at más reciente del material.
func (r *InventoryMovementRepo) LastCreatedAt(ctx context.Context, materialID string) (*time.Time, error) {
	if !isUUID(materialID) {
		return nil, nil
	}
	var last *time.Time
	if err := r.q.QueryRow(ctx,
		`SELECT MAX(created_at) FROM inventory_movements WHERE material_id = $1`, materialID).Scan(&last); err != nil {
		return nil, fmt.Errorf("last created_at: %w", err)
	}
	if last != nil {
		t := last.UTC()
		last = &t
	}
	return last, nil
}

// CountByMaterial cuenta los movimientos de un material.
func (r *InventoryMovementRepo) CountByMaterial(ctx context.Context, materialID string) (int, error) {
	if !isUUID(materialID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_movements WHERE material_id = $1`, materialID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var (
		m           entity.InventoryMovement
		typ         string
		reason, key *string
	)
	if err := row.Scan(&m.ID, &m.MaterialID, &typ, &m.Quantity, &reason, &key, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	m.Reason = derefString(reason)
	m.IdempotencyKey = derefString(key)
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}

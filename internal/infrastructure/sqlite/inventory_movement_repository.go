package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, material_id, type, quantity, reason, idempotency_key, created_at`

// InventoryMovementRepo libro de movimientos sobre SQLite. seq (AUTOINCREMENT) desempata
// movimientos con el mismo created_at.
type InventoryMovementRepo struct {
	q querier
}

// NewInventoryMovementRepository construye el adaptador.
func NewInventoryMovementRepository(q querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Append inserta el movimiento.
func (r *InventoryMovementRepo) Append(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.MaterialID, string(m.Type), m.Quantity.String(),
		nullString(m.Reason), nullString(m.IdempotencyKey), formatTime(m.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: idempotencyKey %q ya usada", domain.ErrConflict, m.IdempotencyKey)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = ?`, id)
}

func (r *InventoryMovementRepo) GetByIdempotencyKey(ctx context.Context, materialID, key string) (*entity.InventoryMovement, error) {
	return r.getOne(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE material_id = ? AND idempotency_key = ?`, materialID, key)
}

func (r *InventoryMovementRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryMovement, error) {
	m, err := scanMovement(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByMaterial devuelve el libro del material en orden de creación.
func (r *InventoryMovementRepo) ListByMaterial(ctx context.Context, materialID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE material_id = ? ORDER BY created_at, seq`, materialID)
}

// List devuelve todos los movimientos en orden de creación.
func (r *InventoryMovementRepo) List(ctx context.Context) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements ORDER BY created_at, seq`)
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
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

func (r *InventoryMovementRepo) LastCreatedAt(ctx context.Context, materialID string) (*time.Time, error) {
	var last sql.NullString
	err := r.q.QueryRowContext(ctx,
		`SELECT MAX(created_at) FROM inventory_movements WHERE material_id = ?`, materialID).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("last created_at: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	t, err := parseTime(last.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *InventoryMovementRepo) CountByMaterial(ctx context.Context, materialID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory_movements WHERE material_id = ?`, materialID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func scanMovement(row rowScanner) (*entity.InventoryMovement, error) {
	var (
		m         entity.InventoryMovement
		typ       string
		reason    sql.NullString
		key       sql.NullString
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.MaterialID, &typ, &m.Quantity, &reason, &key, &createdAt); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	m.Reason = reason.String
	m.IdempotencyKey = key.String
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = t
	return &m, nil
}

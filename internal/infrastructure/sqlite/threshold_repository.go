package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de stock sobre SQLite (PK = material_id).
type ThresholdRepo struct {
	q querier
}

// NewThresholdRepository construye el adaptador.
func NewThresholdRepository(q querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

// Upsert inserta o reemplaza el umbral en una sola sentencia.
func (r *ThresholdRepo) Upsert(ctx context.Context, t *entity.MaterialStockThreshold) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO material_stock_thresholds (material_id, min_stock, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (material_id)
		DO UPDATE SET min_stock = excluded.min_stock, updated_at = excluded.updated_at`,
		t.MaterialID, t.MinStock.String(), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert threshold: %w", err)
	}
	return nil
}

func (r *ThresholdRepo) Get(ctx context.Context, materialID string) (*entity.MaterialStockThreshold, error) {
	t, err := scanThreshold(r.q.QueryRowContext(ctx,
		`SELECT material_id, min_stock, updated_at FROM material_stock_thresholds WHERE material_id = ?`, materialID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get threshold: %w", err)
	}
	return t, nil
}

// Delete es idempotente: no verifica filas afectadas.
func (r *ThresholdRepo) Delete(ctx context.Context, materialID string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM material_stock_thresholds WHERE material_id = ?`, materialID); err != nil {
		return fmt.Errorf("delete threshold: %w", err)
	}
	return nil
}

func (r *ThresholdRepo) List(ctx context.Context) ([]*entity.MaterialStockThreshold, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT material_id, min_stock, updated_at FROM material_stock_thresholds ORDER BY material_id`)
	if err != nil {
		return nil, fmt.Errorf("list thresholds: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MaterialStockThreshold, 0)
	for rows.Next() {
		t, err := scanThreshold(rows)
		if err != nil {
			return nil, fmt.Errorf("scan threshold: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanThreshold(row rowScanner) (*entity.MaterialStockThreshold, error) {
	var (
		t         entity.MaterialStockThreshold
		updatedAt string
	)
	if err := row.Scan(&t.MaterialID, &t.MinStock, &updatedAt); err != nil {
		return nil, err
	}
	ts, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt = ts
	return &t, nil
}

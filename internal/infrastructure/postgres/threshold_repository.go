package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de stock sobre PostgreSQL (usable con pool o tx).
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador. Pasar pool o tx (Querier).
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

// Upsert inserta o actualiza el umbral (por material) en una sola sentencia.
func (r *ThresholdRepo) Upsert(ctx context.Context, t *entity.MaterialStockThreshold) error {
	query := `
		INSERT INTO material_stock_thresholds (material_id, min_stock, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (material_id)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, t.MaterialID, t.MinStock, t.UpdatedAt); err != nil {
		return fmt.Errorf("upsert threshold: %w", err)
	}
	return nil
}

// Get obtiene el umbral del material.
func (r *ThresholdRepo) Get(ctx context.Context, materialID string) (*entity.MaterialStockThreshold, error) {
	if !isUUID(materialID) {
		return nil, nil
	}
	t, err := scanThreshold(r.q.QueryRow(ctx,
		`SELECT material_id, min_stock, updated_at FROM material_stock_thresholds WHERE material_id = $1`, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get threshold: %w", err)
	}
	return t, nil
}

// Delete elimina el umbral; no falla si no existe.
func (r *ThresholdRepo) Delete(ctx context.Context, materialID string) error {
	if !isUUID(materialID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM material_stock_thresholds WHERE material_id = $1`, materialID); err != nil {
		return fmt.Errorf("delete threshold: %w", err)
	}
	return nil
}

// List lista todos los umbrales.
func (r *ThresholdRepo) List(ctx context.Context) ([]*entity.MaterialStockThreshold, error) {
	rows, err := r.q.Query(ctx,
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

func scanThreshold(row pgx.Row) (*entity.MaterialStockThreshold, error) {
	var t entity.MaterialStockThreshold
	if err := row.Scan(&t.MaterialID, &t.MinStock, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción BEGIN IMMEDIATE.
// SQLite tiene un único escritor, así que todas las escrituras quedan serializadas.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia la transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// materialID no se usa: el lock de escritura cubre toda la base.
func (r *TxRunner) Run(ctx context.Context, _ string, fn func(
	materials repository.MaterialRepository,
	movements repository.InventoryMovementRepository,
	thresholds repository.ThresholdRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewMaterialRepository(tx), NewInventoryMovementRepository(tx), NewThresholdRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

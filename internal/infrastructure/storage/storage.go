// Package storage arma los repositorios y el TxRunner del motor elegido en la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
	"github.com/kombaos/inventario-api/internal/infrastructure/memory"
	"github.com/kombaos/inventario-api/internal/infrastructure/postgres"
	"github.com/kombaos/inventario-api/internal/infrastructure/sqlite"
	"github.com/kombaos/inventario-api/pkg/config"
)

// Backend repositorios de un motor concreto más su TxRunner.
type Backend struct {
	Driver     string
	Materials  repository.MaterialRepository
	Products   repository.ProductRepository
	Movements  repository.InventoryMovementRepository
	Thresholds repository.ThresholdRepository
	TxRunner   inventory.TxRunner

	closeFn func()
}

// Close libera las conexiones del motor (no-op en memoria).
func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// NewMemory arma un backend en memoria vacío.
func NewMemory() *Backend {
	s := memory.NewStore()
	return &Backend{
		Driver:     config.StorageMemory,
		Materials:  memory.NewMaterialRepository(s),
		Products:   memory.NewProductRepository(s),
		Movements:  memory.NewInventoryMovementRepository(s),
		Thresholds: memory.NewThresholdRepository(s),
		TxRunner:   memory.NewTxRunner(s),
	}
}

// Open abre el motor indicado por cfg.Storage.Driver y aplica las migraciones pendientes.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return NewMemory(), nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return &Backend{
			Driver:     config.StorageSQLite,
			Materials:  sqlite.NewMaterialRepository(db),
			Products:   sqlite.NewProductRepository(db),
			Movements:  sqlite.NewInventoryMovementRepository(db),
			Thresholds: sqlite.NewThresholdRepository(db),
			TxRunner:   sqlite.NewTxRunner(db),
			closeFn:    func() { _ = db.Close() },
		}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Backend{
			Driver:     config.StoragePostgres,
			Materials:  postgres.NewMaterialRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Movements:  postgres.NewInventoryMovementRepository(pool),
			Thresholds: postgres.NewThresholdRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			closeFn:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("motor de almacenamiento desconocido %q", cfg.Storage.Driver)
}

package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
	"github.com/kombaos/inventario-api/internal/infrastructure/sqlite"
)

func TestTxRunner_RollbackAlFallar(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	materials := sqlite.NewMaterialRepository(db)
	movements := sqlite.NewInventoryMovementRepository(db)
	m := &entity.Material{ID: uuid.NewString(), Name: "Seda", Unit: "m", CreatedAt: time.Now().UTC()}
	require.NoError(t, materials.Create(ctx, m))

	boom := errors.New("boom")
	err = sqlite.NewTxRunner(db).Run(ctx, m.ID, func(
		_ repository.MaterialRepository,
		txMovements repository.InventoryMovementRepository,
		_ repository.ThresholdRepository,
	) error {
		require.NoError(t, txMovements.Append(ctx, &entity.InventoryMovement{
			ID: uuid.NewString(), MaterialID: m.ID, Type: entity.MovementTypeIN,
			Quantity: decimal.NewFromInt(1), CreatedAt: time.Now().UTC(),
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := movements.CountByMaterial(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "el movimiento no se confirma")
}

func TestMigrate_Idempotente(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(ctx, db))
}

func TestMovimientoConMaterialInexistenteFalla(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = sqlite.NewInventoryMovementRepository(db).Append(ctx, &entity.InventoryMovement{
		ID: uuid.NewString(), MaterialID: "nope", Type: entity.MovementTypeIN,
		Quantity: decimal.NewFromInt(1), CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err, "la clave foránea está activa")
}

package inventory_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	domaininventory "github.com/kombaos/inventario-api/internal/domain/inventory"
	"github.com/kombaos/inventario-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	materials  *memory.MaterialRepo
	movements  *memory.InventoryMovementRepo
	thresholds *memory.ThresholdRepo
	tx         *memory.TxRunner

	ledger    *inventory.LedgerUseCase
	stock     *inventory.StockUseCase
	threshold *inventory.ThresholdUseCase
	alerts    *inventory.AlertUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{
		materials:  memory.NewMaterialRepository(s),
		movements:  memory.NewInventoryMovementRepository(s),
		thresholds: memory.NewThresholdRepository(s),
		tx:         memory.NewTxRunner(s),
	}
	f.ledger = inventory.NewLedgerUseCase(f.tx, f.materials, f.movements)
	f.stock = inventory.NewStockUseCase(f.materials, f.movements)
	f.threshold = inventory.NewThresholdUseCase(f.tx, f.materials, f.thresholds)
	f.alerts = inventory.NewAlertUseCase(f.materials, f.movements, f.thresholds, 2)
	return f
}

func (f *fixture) addMaterial(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.materials.Create(context.Background(), &entity.Material{
		ID: id, Name: name, Unit: "kg", CreatedAt: time.Now().UTC(),
	}))
}

func (f *fixture) append(t *testing.T, materialID string, typ entity.MovementType, qty string) *entity.InventoryMovement {
	t.Helper()
	mov, created, err := f.ledger.Append(context.Background(), inventory.AppendMovementInput{
		MaterialID: materialID,
		Type:       typ,
		Quantity:   decimal.RequireFromString(qty),
	})
	require.NoError(t, err)
	require.True(t, created)
	return mov
}

func (f *fixture) stockOf(t *testing.T, materialID string) decimal.Decimal {
	t.Helper()
	s, err := f.stock.Get(context.Background(), materialID)
	require.NoError(t, err)
	return s.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_EscenariosLana(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "lana", "Lana")

	// A: umbral 10 sin movimientos
	_, err := f.threshold.Upsert(ctx, "lana", decimal.NewFromInt(10))
	require.NoError(t, err)
	status, err := f.alerts.Status(ctx, "lana")
	require.NoError(t, err)
	assert.True(t, status.Stock.IsZero())
	assert.Equal(t, entity.StockStatusLow, status.Status)

	// B: IN 5
	f.append(t, "lana", entity.MovementTypeIN, "5")
	status, err = f.alerts.Status(ctx, "lana")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(status.Stock))
	assert.Equal(t, entity.StockStatusLow, status.Status)

	// C: IN 20
	f.append(t, "lana", entity.MovementTypeIN, "20")
	status, err = f.alerts.Status(ctx, "lana")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(status.Stock))
	assert.Equal(t, entity.StockStatusOK, status.Status)

	// D: ADJUST -30, el stock queda negativo
	f.append(t, "lana", entity.MovementTypeADJUST, "-30")
	status, err = f.alerts.Status(ctx, "lana")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-5).Equal(status.Stock))
	assert.Equal(t, entity.StockStatusLow, status.Status)

	// E: umbral negativo rechazado, el anterior se conserva
	_, err = f.threshold.Upsert(ctx, "lana", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	stored, err := f.threshold.Get(ctx, "lana")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, decimal.NewFromInt(10).Equal(stored.MinStock))

	// F: cantidad cero rechazada, el libro no cambia
	_, _, err = f.ledger.Append(ctx, inventory.AppendMovementInput{MaterialID: "lana", Type: entity.MovementTypeIN, Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	list, err := f.ledger.ListByMaterial(ctx, "lana")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestLedger_AppendValidaAntesDeEscribir(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	tests := []struct {
		name string
		in   inventory.AppendMovementInput
		want error
	}{
		{"sin material", inventory.AppendMovementInput{Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"material inexistente", inventory.AppendMovementInput{MaterialID: "nope", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}, domain.ErrNotFound},
		{"OUT negativo", inventory.AppendMovementInput{MaterialID: "m-1", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"motivo largo", inventory.AppendMovementInput{MaterialID: "m-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), Reason: strings.Repeat("x", domaininventory.MaxReasonLength+1)}, domain.ErrInvalidInput},
		{"clave larga", inventory.AppendMovementInput{MaterialID: "m-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), IdempotencyKey: strings.Repeat("k", domaininventory.MaxIdempotencyKeyLength+1)}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.ledger.Append(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	all, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLedger_Idempotencia(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")
	f.addMaterial(t, "m-2", "Lino")

	in := inventory.AppendMovementInput{MaterialID: "m-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(4), IdempotencyKey: "compra-1"}
	first, created, err := f.ledger.Append(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)

	// el reintento devuelve el original aunque cambie el cuerpo
	in.Quantity = decimal.NewFromInt(400)
	replay, created, err := f.ledger.Append(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, replay.ID)
	assert.True(t, decimal.NewFromInt(4).Equal(replay.Quantity))
	assert.True(t, decimal.NewFromInt(4).Equal(f.stockOf(t, "m-1")))

	// la clave es por material
	_, created, err = f.ledger.Append(ctx, inventory.AppendMovementInput{MaterialID: "m-2", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1), IdempotencyKey: "compra-1"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestLedger_AppendFromRequest_HeaderTienePrioridad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	req := dto.CreateMovementRequest{MaterialID: "m-1", Type: " in ", Quantity: decimal.NewFromInt(2), IdempotencyKey: "body-key"}
	out, created, err := f.ledger.AppendFromRequest(ctx, "header-key", req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "IN", out.Type)
	require.NotNil(t, out.IdempotencyKey)
	assert.Equal(t, "header-key", *out.IdempotencyKey)
	assert.Nil(t, out.Reason)

	_, created, err = f.ledger.AppendFromRequest(ctx, "", req)
	require.NoError(t, err)
	assert.True(t, created, "la clave del body es distinta a la del header")
}

func TestLedger_AppendConcurrenteNoPierdeMovimientos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.ledger.Append(ctx, inventory.AppendMovementInput{MaterialID: "m-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, decimal.NewFromInt(workers).Equal(f.stockOf(t, "m-1")))
	list, err := f.ledger.ListByMaterial(ctx, "m-1")
	require.NoError(t, err)
	require.Len(t, list, workers)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}

func TestLedger_ReintentosConcurrentesCreanUnSoloMovimiento(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := f.ledger.Append(ctx, inventory.AppendMovementInput{MaterialID: "m-1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(3), IdempotencyKey: "k"})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.True(t, decimal.NewFromInt(3).Equal(f.stockOf(t, "m-1")))
}

func TestLedger_CreatedAtNoRetrocede(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	later := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	clock := []time.Time{later, earlier}
	f.ledger.WithClock(func() time.Time {
		now := clock[0]
		clock = clock[1:]
		return now
	})

	first := f.append(t, "m-1", entity.MovementTypeIN, "1")
	second := f.append(t, "m-1", entity.MovementTypeOUT, "1")
	assert.Equal(t, later, first.CreatedAt)
	assert.Equal(t, later, second.CreatedAt, "un reloj que retrocede no reordena el libro")

	list, err := f.ledger.ListByMaterial(ctx, "m-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestLedger_Lecturas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	empty, err := f.ledger.ListByMaterial(ctx, "m-1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.ledger.ListByMaterial(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mov := f.append(t, "m-1", entity.MovementTypeIN, "2")
	got, err := f.ledger.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, mov.ID, got.ID)

	_, err = f.ledger.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.stock.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLecturas_IDConEspacios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")
	f.append(t, " m-1 ", entity.MovementTypeIN, "4")

	stock, err := f.stock.Get(ctx, "  m-1\t")
	require.NoError(t, err)
	assert.Equal(t, "m-1", stock.MaterialID)
	assert.True(t, decimal.NewFromInt(4).Equal(stock.Stock))

	list, err := f.ledger.ListByMaterial(ctx, " m-1 ")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	th, err := f.threshold.Upsert(ctx, " m-1 ", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, "m-1", th.MaterialID)

	got, err := f.threshold.Get(ctx, " m-1 ")
	require.NoError(t, err)
	require.NotNil(t, got)

	status, err := f.alerts.Status(ctx, " m-1 ")
	require.NoError(t, err)
	assert.Equal(t, "m-1", status.MaterialID)
	assert.Equal(t, entity.StockStatusLow, status.Status)

	require.NoError(t, f.threshold.Delete(ctx, " m-1 "))
	got, err = f.threshold.Get(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = f.threshold.Upsert(ctx, "   ", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.stock.Get(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAppend_RangoDecimalAntesDeEscribir(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addMaterial(t, "m-1", "Seda")

	_, _, err := f.ledger.Append(ctx, inventory.AppendMovementInput{
		MaterialID: "m-1", Type: entity.MovementTypeIN, Quantity: decimal.RequireFromString("1e-20000000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.threshold.Upsert(ctx, "m-1", decimal.RequireFromString("1e-20000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := f.movements.CountByMaterial(ctx, "m-1")
	require.NoError(t, err)
	assert.Zero(t, n)
	th, err := f.threshold.Get(ctx, "m-1")
	require.NoError(t, err)
	assert.Nil(t, th)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/application/usecase"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/infrastructure/storage"
	"github.com/kombaos/inventario-api/pkg/money"
)

func newProductUC(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	b := storage.NewMemory()
	t.Cleanup(b.Close)
	return usecase.NewProductUseCase(b.Products)
}

func TestProduct_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC(t)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Camiseta", Description: "Algodón orgánico", PriceCents: 4500, Currency: "COP"})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, "COP", p.Currency)

	inactive, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Bolso", Description: "Yute", PriceCents: 0, Currency: "USD", Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, inactive.Active)

	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{PriceCents: ptr(int64(5000))})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, int64(5000), updated.PriceCents)
	assert.Equal(t, "Camiseta", updated.Name, "los campos omitidos no cambian")

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, uc.Delete(ctx, p.ID))
	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProduct_Validacion(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC(t)

	tests := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin nombre", dto.CreateProductRequest{Description: "d", PriceCents: 1, Currency: "COP"}},
		{"sin descripción", dto.CreateProductRequest{Name: "n", PriceCents: 1, Currency: "COP"}},
		{"precio negativo", dto.CreateProductRequest{Name: "n", Description: "d", PriceCents: -1, Currency: "COP"}},
		{"precio excesivo", dto.CreateProductRequest{Name: "n", Description: "d", PriceCents: money.MaxPriceCents + 1, Currency: "COP"}},
		{"moneda inválida", dto.CreateProductRequest{Name: "n", Description: "d", PriceCents: 1, Currency: "pesos"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

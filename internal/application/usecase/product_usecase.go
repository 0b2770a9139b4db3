package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
	"github.com/kombaos/inventario-api/pkg/money"
)

// ProductUseCase casos de uso CRUD para productos terminados. El precio siempre en centavos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. Active es true si no se indica.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Currency:    strings.TrimSpace(in.Currency),
		Active:      active,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos presentes en el request.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.PriceCents != nil {
		product.PriceCents = *in.PriceCents
	}
	if in.Currency != nil {
		product.Currency = strings.TrimSpace(*in.Currency)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto (domain.ErrNotFound si no existe).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s no encontrado", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func validateProduct(p *entity.Product) error {
	if p.Name == "" || utf8.RuneCountInString(p.Name) > 200 {
		return fmt.Errorf("%w: name es requerido (máximo 200 caracteres)", domain.ErrInvalidInput)
	}
	if p.Description == "" || utf8.RuneCountInString(p.Description) > 2000 {
		return fmt.Errorf("%w: description es requerida (máximo 2000 caracteres)", domain.ErrInvalidInput)
	}
	if err := money.ValidateCents(p.PriceCents, money.MaxPriceCents); err != nil {
		return fmt.Errorf("%w: priceCents %v", domain.ErrInvalidInput, err)
	}
	code, err := money.ParseCurrency(p.Currency)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	p.Currency = code
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

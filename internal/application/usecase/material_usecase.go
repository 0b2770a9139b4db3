package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
	"github.com/kombaos/inventario-api/pkg/money"
)

// MaterialUseCase casos de uso CRUD para materiales. El stock se maneja vía movimientos.
type MaterialUseCase struct {
	repo     repository.MaterialRepository
	txRunner inventory.TxRunner
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, txRunner inventory.TxRunner) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un material nuevo.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	material := &entity.Material{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := applyMaterialRequest(material, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID (nil si no existe).
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update reemplaza los datos de un material. ID y CreatedAt no cambian.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if err := applyMaterialRequest(material, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina un material y su umbral. Un material con movimientos no se puede borrar:
// el libro nunca se destruye.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, id, func(
		materials repository.MaterialRepository,
		movements repository.InventoryMovementRepository,
		thresholds repository.ThresholdRepository,
	) error {
		material, err := materials.Lock(ctx, id)
		if err != nil {
			return err
		}
		if material == nil {
			return fmt.Errorf("%w: material %s no encontrado", domain.ErrNotFound, id)
		}
		count, err := movements.CountByMaterial(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: el material tiene %d movimientos registrados", domain.ErrConflict, count)
		}
		if err := thresholds.Delete(ctx, id); err != nil {
			return err
		}
		return materials.Delete(ctx, id)
	})
}

// List lista materiales aplicando filtros opcionales (sin distinguir mayúsculas).
func (uc *MaterialUseCase) List(ctx context.Context, filter repository.MaterialFilter) ([]dto.MaterialResponse, error) {
	all, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// cases.Caser guarda estado: uno por llamada
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(filter.Query))
	supplier := fold.String(strings.TrimSpace(filter.Supplier))
	origin := fold.String(strings.TrimSpace(filter.Origin))

	out := make([]dto.MaterialResponse, 0, len(all))
	for _, m := range all {
		if query != "" && !strings.Contains(fold.String(m.Name), query) {
			continue
		}
		if supplier != "" && fold.String(m.Supplier) != supplier {
			continue
		}
		if origin != "" && fold.String(m.Origin) != origin {
			continue
		}
		if filter.Certified != nil && m.Certified != *filter.Certified {
			continue
		}
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

func applyMaterialRequest(m *entity.Material, in dto.CreateMaterialRequest) error {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	supplier := strings.TrimSpace(in.Supplier)
	origin := strings.TrimSpace(in.Origin)
	switch {
	case name == "" || unit == "":
		return fmt.Errorf("%w: name y unit son requeridos", domain.ErrInvalidInput)
	case utf8.RuneCountInString(name) > 200:
		return fmt.Errorf("%w: name admite máximo 200 caracteres", domain.ErrInvalidInput)
	case utf8.RuneCountInString(unit) > 50:
		return fmt.Errorf("%w: unit admite máximo 50 caracteres", domain.ErrInvalidInput)
	case utf8.RuneCountInString(supplier) > 200 || utf8.RuneCountInString(origin) > 200:
		return fmt.Errorf("%w: supplier y origin admiten máximo 200 caracteres", domain.ErrInvalidInput)
	}

	var currency *string
	if in.Currency != nil && strings.TrimSpace(*in.Currency) != "" {
		code, err := money.ParseCurrency(strings.TrimSpace(*in.Currency))
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		currency = &code
	}
	var cost *int64
	if in.CostCents != nil {
		if err := money.ValidateCents(*in.CostCents, money.MaxPriceCents); err != nil {
			return fmt.Errorf("%w: costCents %v", domain.ErrInvalidInput, err)
		}
		if currency == nil {
			return fmt.Errorf("%w: currency es requerida cuando se indica costCents", domain.ErrInvalidInput)
		}
		c := *in.CostCents
		cost = &c
	}

	m.Name = name
	m.Unit = unit
	m.Supplier = supplier
	m.Origin = origin
	m.Certified = in.Certified
	m.CostCents = cost
	m.Currency = currency
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      m.Unit,
		Supplier:  optionalString(m.Supplier),
		Origin:    optionalString(m.Origin),
		Certified: m.Certified,
		CostCents: m.CostCents,
		Currency:  m.Currency,
		CreatedAt: m.CreatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

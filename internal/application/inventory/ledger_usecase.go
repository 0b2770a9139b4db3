package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kombaos/inventario-api/internal/domain"
	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/inventory"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

// LedgerUseCase agrega y consulta movimientos del libro de inventario.
// Cada escritura corre dentro de TxRunner, serializada por material.
type LedgerUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	movementRepo repository.InventoryMovementRepository
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	movementRepo repository.InventoryMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// AppendMovementInput entrada para agregar un movimiento al libro.
type AppendMovementInput struct {
	MaterialID     string
	Type           entity.MovementType
	Quantity       decimal.Decimal
	Reason         string
	IdempotencyKey string
}

// Append valida la entrada, bloquea el material y agrega el movimiento.
// Devuelve created=false cuando la clave de idempotencia ya existía para el material:
// en ese caso se devuelve el movimiento original y no se agrega nada.
//
// Errores:
//   - domain.ErrInvalidInput  tipo desconocido, cantidad cero o fuera de rango, IN/OUT negativo, textos largos.
//   - domain.ErrNotFound      el material no existe.
func (uc *LedgerUseCase) Append(ctx context.Context, in AppendMovementInput) (*entity.InventoryMovement, bool, error) {
	in.MaterialID = strings.TrimSpace(in.MaterialID)
	in.Reason = strings.TrimSpace(in.Reason)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)

	// ── 1. Validar antes de cualquier escritura ───────────────────────────────
	if in.MaterialID == "" {
		return nil, false, fmt.Errorf("%w: materialId es requerido", domain.ErrInvalidInput)
	}
	if err := inventory.ValidateMovement(in.Type, in.Quantity); err != nil {
		return nil, false, err
	}
	if utf8.RuneCountInString(in.Reason) > inventory.MaxReasonLength {
		return nil, false, fmt.Errorf("%w: reason admite máximo %d caracteres", domain.ErrInvalidInput, inventory.MaxReasonLength)
	}
	if utf8.RuneCountInString(in.IdempotencyKey) > inventory.MaxIdempotencyKeyLength {
		return nil, false, fmt.Errorf("%w: idempotencyKey admite máximo %d caracteres", domain.ErrInvalidInput, inventory.MaxIdempotencyKeyLength)
	}

	var (
		result  *entity.InventoryMovement
		created bool
	)
	// ── 2. Escritura serializada por material ─────────────────────────────────
	err := uc.txRunner.Run(ctx, in.MaterialID, func(
		materials repository.MaterialRepository,
		movements repository.InventoryMovementRepository,
		_ repository.ThresholdRepository,
	) error {
		if err := lockMaterial(ctx, materials, in.MaterialID); err != nil {
			return err
		}

		if in.IdempotencyKey != "" {
			existing, err := movements.GetByIdempotencyKey(ctx, in.MaterialID, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
		}

		createdAt := normalizeTime(uc.now())
		last, err := movements.LastCreatedAt(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		// createdAt nunca retrocede dentro del libro de un material
		if last != nil && last.After(createdAt) {
			createdAt = *last
		}

		mov := &entity.InventoryMovement{
			ID:             uuid.New().String(),
			MaterialID:     in.MaterialID,
			Type:           in.Type,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      createdAt,
		}
		if err := movements.Append(ctx, mov); err != nil {
			return err
		}
		result = mov
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// ListByMaterial devuelve el libro de un material en orden de creación.
// Un libro vacío es una lista vacía, no un error.
func (uc *LedgerUseCase) ListByMaterial(ctx context.Context, materialID string) ([]*entity.InventoryMovement, error) {
	materialID, err := ensureMaterial(ctx, uc.materialRepo, materialID)
	if err != nil {
		return nil, err
	}
	list, err := uc.movementRepo.ListByMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.InventoryMovement{}
	}
	return list, nil
}

// List devuelve todos los movimientos registrados.
func (uc *LedgerUseCase) List(ctx context.Context) ([]*entity.InventoryMovement, error) {
	list, err := uc.movementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.InventoryMovement{}
	}
	return list, nil
}

// GetByID obtiene un movimiento por ID.
func (uc *LedgerUseCase) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	mov, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s no encontrado", domain.ErrNotFound, id)
	}
	return mov, nil
}

// ensureMaterial recorta el id y devuelve ErrNotFound si el material no existe.
// El id devuelto es el que deben usar las lecturas siguientes.
func ensureMaterial(ctx context.Context, repo repository.MaterialRepository, materialID string) (string, error) {
	materialID = strings.TrimSpace(materialID)
	if materialID == "" {
		return "", fmt.Errorf("%w: materialId es requerido", domain.ErrInvalidInput)
	}
	material, err := repo.GetByID(ctx, materialID)
	if err != nil {
		return "", err
	}
	if material == nil {
		return "", fmt.Errorf("%w: material %s no encontrado", domain.ErrNotFound, materialID)
	}
	return materialID, nil
}

// normalizeTime lleva el instante a UTC con precisión de microsegundos (la de TIMESTAMPTZ).
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// lockMaterial bloquea el material dentro de la transacción; ErrNotFound si no existe.
func lockMaterial(ctx context.Context, materials repository.MaterialRepository, materialID string) error {
	material, err := materials.Lock(ctx, materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return fmt.Errorf("%w: material %s no encontrado", domain.ErrNotFound, materialID)
	}
	return nil
}

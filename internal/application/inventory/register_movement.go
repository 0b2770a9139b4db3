package inventory

import (
	"context"
	"strings"

	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/domain/entity"
)

// AppendFromRequest adapta el request HTTP al caso de uso Append.
// headerKey es el valor del header Idempotency-Key; tiene prioridad sobre el del body.
func (uc *LedgerUseCase) AppendFromRequest(ctx context.Context, headerKey string, in dto.CreateMovementRequest) (*dto.MovementResponse, bool, error) {
	key := strings.TrimSpace(headerKey)
	if key == "" {
		key = in.IdempotencyKey
	}
	mov, created, err := uc.Append(ctx, AppendMovementInput{
		MaterialID:     in.MaterialID,
		Type:           entity.MovementType(strings.ToUpper(strings.TrimSpace(in.Type))),
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		IdempotencyKey: key,
	})
	if err != nil {
		return nil, false, err
	}
	out := ToMovementResponse(mov)
	return &out, created, nil
}

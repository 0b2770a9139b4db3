package inventory

import (
	"context"

	"github.com/kombaos/inventario-api/internal/domain/entity"
	"github.com/kombaos/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función de escritura serializada por material, pasando repositorios
// atados a esa transacción. Dos escrituras sobre el mismo material nunca se intercalan;
// escrituras sobre materiales distintos pueden correr en paralelo si el motor lo permite.
// Si fn devuelve error no queda ningún efecto parcial.
type TxRunner interface {
	Run(ctx context.Context, materialID string, fn func(
		materials repository.MaterialRepository,
		movements repository.InventoryMovementRepository,
		thresholds repository.ThresholdRepository,
	) error) error
}

// LowStockReportRenderer genera la representación de un reporte de stock bajo (PDF, XML...).
type LowStockReportRenderer interface {
	Render(ctx context.Context, report LowStockReport) ([]byte, error)
	ContentType() string
	Extension() string
}

// LowStockReport datos de entrada de un reporte de stock bajo.
type LowStockReport struct {
	Title       string
	GeneratedAt string // RFC 3339, UTC
	Alerts      []entity.LowStockAlert
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/application/inventory"
)

// HeaderIdempotencyKey header opcional para reintentos seguros de POST /movements.
const HeaderIdempotencyKey = "Idempotency-Key"

// InventoryHandler maneja el libro de movimientos y las alertas de stock bajo.
type InventoryHandler struct {
	ledger  *inventory.LedgerUseCase
	alerts  *inventory.AlertUseCase
	reports *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, alerts *inventory.AlertUseCase, reports *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, alerts: alerts, reports: reports}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Agrega un movimiento al libro. Con la misma Idempotency-Key devuelve el movimiento original (200).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave de idempotencia (prioridad sobre el body)"
// @Param        body             body    dto.CreateMovementRequest  true   "materialId, type (IN|OUT|ADJUST), quantity, reason"
// @Success      201  {object}  dto.MovementResponse
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, created, err := h.ledger.AppendFromRequest(c.UserContext(), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, err)
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Produce      json
// @Param        materialId  query  string  false  "Filtrar por material. Vacío = todos."
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	materialID := strings.TrimSpace(c.Query("materialId"))
	if materialID == "" {
		list, err := h.ledger.List(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(inventory.ToMovementResponses(list))
	}
	list, err := h.ledger.ListByMaterial(c.UserContext(), materialID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponses(list))
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.ledger.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(mov))
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Description  Materiales con umbral cuyo stock es estrictamente menor que el mínimo, ordenados por materialId.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.LowStockAlertResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/low-stock [get]
func (h *InventoryHandler) LowStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToLowStockAlertResponses(alerts))
}

// LowStockReport devuelve el handler de descarga del reporte en el formato dado.
//
// @Summary      Descargar reporte de stock bajo
// @Tags         inventory
// @Produce      application/pdf
// @Produce      application/xml
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/low-stock/report.pdf [get]
// @Router       /api/inventory/alerts/low-stock/report.xml [get]
func (h *InventoryHandler) LowStockReport(format string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		content, contentType, filename, err := h.reports.Export(c.UserContext(), format)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(content)
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kombaos/inventario-api/internal/application/dto"
	"github.com/kombaos/inventario-api/internal/application/inventory"
)

// StockHandler expone el stock proyectado, el estado y el umbral de un material.
type StockHandler struct {
	stock      *inventory.StockUseCase
	thresholds *inventory.ThresholdUseCase
	alerts     *inventory.AlertUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, thresholds *inventory.ThresholdUseCase, alerts *inventory.AlertUseCase) *StockHandler {
	return &StockHandler{stock: stock, thresholds: thresholds, alerts: alerts}
}

// GetStock godoc
// @Summary      Stock actual de un material
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.stock.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMaterialStockResponse(stock))
}

// GetStatus godoc
// @Summary      Estado de stock de un material
// @Description  NO_THRESHOLD sin umbral, LOW si stock < minStock, OK en otro caso.
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/status [get]
func (h *StockHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.alerts.Status(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMaterialStatusResponse(status))
}

// GetThreshold godoc
// @Summary      Umbral de stock mínimo
// @Tags         stock
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.ThresholdResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/threshold [get]
func (h *StockHandler) GetThreshold(c *fiber.Ctx) error {
	t, err := h.thresholds.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el material no tiene umbral configurado"})
	}
	return c.JSON(inventory.ToThresholdResponse(t))
}

// PutThreshold godoc
// @Summary      Crear o reemplazar umbral
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del material"
// @Param        body  body  dto.UpsertThresholdRequest  true  "minStock >= 0"
// @Success      200  {object}  dto.ThresholdResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/threshold [put]
func (h *StockHandler) PutThreshold(c *fiber.Ctx) error {
	var in dto.UpsertThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.MinStock == nil {
		return validationError(c, "minStock es requerido")
	}
	t, err := h.thresholds.Upsert(c.UserContext(), c.Params("id"), *in.MinStock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToThresholdResponse(t))
}

// DeleteThreshold godoc
// @Summary      Eliminar umbral
// @Description  Idempotente: eliminar un umbral inexistente también responde 204.
// @Tags         stock
// @Param        id   path  string  true  "ID del material"
// @Success      204
// @Router       /api/materials/{id}/threshold [delete]
func (h *StockHandler) DeleteThreshold(c *fiber.Ctx) error {
	if err := h.thresholds.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

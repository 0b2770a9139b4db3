package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/application/usecase"
	"github.com/kombaos/inventario-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	Logger      *logger.Logger

	Ledger     *inventory.LedgerUseCase
	Stock      *inventory.StockUseCase
	Thresholds *inventory.ThresholdUseCase
	Alerts     *inventory.AlertUseCase
	Reports    *inventory.ReportUseCase
	MaterialUC *usecase.MaterialUseCase
	ProductUC  *usecase.ProductUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Libro de movimientos y alertas
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Alerts, deps.Reports)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", inventoryHandler.CreateMovement)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/alerts/low-stock", inventoryHandler.LowStockAlerts)
	invGroup.Get("/alerts/low-stock/report.pdf", inventoryHandler.LowStockReport("pdf"))
	invGroup.Get("/alerts/low-stock/report.xml", inventoryHandler.LowStockReport("xml"))

	// Catálogo de materiales, stock y umbrales
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	stockHandler := NewStockHandler(deps.Stock, deps.Thresholds, deps.Alerts)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)
	materials.Get("/:id/stock", stockHandler.GetStock)
	materials.Get("/:id/status", stockHandler.GetStatus)
	materials.Get("/:id/threshold", stockHandler.GetThreshold)
	materials.Put("/:id/threshold", stockHandler.PutThreshold)
	materials.Delete("/:id/threshold", stockHandler.DeleteThreshold)

	// Catálogo de productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/swaggo/swag"

	_ "github.com/kombaos/inventario-api/docs"
	"github.com/kombaos/inventario-api/internal/application/inventory"
	"github.com/kombaos/inventario-api/internal/application/usecase"
	infrapdf "github.com/kombaos/inventario-api/internal/infrastructure/pdf"
	"github.com/kombaos/inventario-api/internal/infrastructure/storage"
	"github.com/kombaos/inventario-api/internal/infrastructure/xmlreport"
	httpRouter "github.com/kombaos/inventario-api/internal/interfaces/http"
	"github.com/kombaos/inventario-api/pkg/config"
	"github.com/kombaos/inventario-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title        Inventario API
// @version      1.0
// @description  Libro de movimientos, stock proyectado, umbrales y alertas de stock bajo.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	// Cantidades como números JSON (el front-end no espera strings).
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	ledgerUC := inventory.NewLedgerUseCase(backend.TxRunner, backend.Materials, backend.Movements)
	stockUC := inventory.NewStockUseCase(backend.Materials, backend.Movements)
	thresholdUC := inventory.NewThresholdUseCase(backend.TxRunner, backend.Materials, backend.Thresholds)
	alertUC := inventory.NewAlertUseCase(backend.Materials, backend.Movements, backend.Thresholds, cfg.Alerts.MaxParallel)
	reportUC := inventory.NewReportUseCase(alertUC,
		infrapdf.NewLowStockReportRenderer(),
		xmlreport.NewLowStockReportRenderer(),
	)
	materialUC := usecase.NewMaterialUseCase(backend.Materials, backend.TxRunner)
	productUC := usecase.NewProductUseCase(backend.Products)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger UI deshabilitada: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		Logger:      log,
		Ledger:      ledgerUC,
		Stock:       stockUC,
		Thresholds:  thresholdUC,
		Alerts:      alertUC,
		Reports:     reportUC,
		MaterialUC:  materialUC,
		ProductUC:   productUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

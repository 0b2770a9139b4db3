// import_materials carga un catálogo XML de materiales en el almacenamiento configurado.
//
// Uso: go run ./cmd/import_materials [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual. Acepta UTF-8 e ISO-8859-1.
// Las filas inválidas se registran y se omiten; el código de salida es 1 si alguna falló.
package main

import (
	"context"
	"os"

	"github.com/kombaos/inventario-api/internal/application/usecase"
	"github.com/kombaos/inventario-api/internal/infrastructure/catalogxml"
	"github.com/kombaos/inventario-api/internal/infrastructure/storage"
	"github.com/kombaos/inventario-api/pkg/config"
	"github.com/kombaos/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("abrir catálogo")
	}
	defer f.Close()

	entries, err := catalogxml.Parse(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("decodificar catálogo")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()
	if backend.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los materiales importados no se conservan al terminar")
	}

	materialUC := usecase.NewMaterialUseCase(backend.Materials, backend.TxRunner)
	var imported, failed int
	for _, e := range entries {
		out, err := materialUC.Create(ctx, e.Request)
		if err != nil {
			failed++
			log.Warn().Err(err).Int("material", e.Line).Str("nombre", e.Request.Name).Msg("fila omitida")
			continue
		}
		imported++
		log.Debug().Str("id", out.ID).Str("nombre", out.Name).Msg("material importado")
	}

	log.Info().
		Str("path", xmlPath).
		Str("storage", backend.Driver).
		Int("importados", imported).
		Int("omitidos", failed).
		Msg("importación terminada")
	if failed > 0 {
		backend.Close()
		os.Exit(1)
	}
}

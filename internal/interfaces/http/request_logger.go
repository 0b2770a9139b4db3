package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kombaos/inventario-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog.
// Las respuestas 5xx se registran en nivel error junto con el error interno.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// deja que el ErrorHandler de Fiber fije el status antes de registrar
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
			if err, ok := c.Locals(localError).(error); ok {
				event = event.Err(err)
			} else if chainErr != nil {
				event = event.Err(chainErr)
			}
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return nil
	}
}

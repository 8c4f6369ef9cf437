package middlewares

import (
	"jadwalsholat_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetupMiddlewares: logger di luar supaya request yang panic tetap tercatat.
func SetupMiddlewares(app *fiber.App, log *zap.Logger) {
	app.Use(logger.LoggerMiddleware(log))
	app.Use(RecoveryMiddleware(log))
}

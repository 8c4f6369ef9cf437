package routes

import (
	"errors"
	"time"

	prayerRoute "jadwalsholat_backend/internals/features/prayers/schedules/route"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/middlewares"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp membangun fiber app lengkap. App ini tidak pernah Listen:
// dipakai in-process (app.Test) oleh exporter & test.
func NewApp(svc *service.PrayerService, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		StrictRouting:         false,
		ErrorHandler:          ErrorHandler,
	})
	middlewares.SetupMiddlewares(app, log)
	SetupRoutes(app, svc)
	return app
}

// ErrorHandler semua error controller lewat sini (apperr → status + error_code).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		return helper.JsonError(c, fe.Code, "Endpoint tidak ditemukan")
	}
	return helper.JsonFromError(c, err)
}

func SetupRoutes(app *fiber.App, svc *service.PrayerService) {
	startTime := time.Now()
	BaseRoutes(app, startTime)

	api := app.Group("/api")
	prayerRoute.PrayerPublicRoutes(api, svc)
}

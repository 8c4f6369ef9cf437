package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, startTime time.Time) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "OK",
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}

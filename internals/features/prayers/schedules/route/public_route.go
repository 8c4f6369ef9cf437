package route

import (
	"jadwalsholat_backend/internals/features/prayers/schedules/controller"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"

	"github.com/gofiber/fiber/v2"
)

func PrayerPublicRoutes(api fiber.Router, svc *service.PrayerService) {
	ctrl := controller.NewPrayerController(svc)

	// Prefix: /provinces
	provinces := api.Group("/provinces")
	provinces.Get("/", ctrl.ListProvinces)
	provinces.Get("/:province/cities", ctrl.ListCities)

	// Prefix: /cities
	cities := api.Group("/cities")
	cities.Get("/:city", ctrl.GetCity)
	cities.Get("/:city/prayers", ctrl.GetPrayersInRange)
	cities.Get("/:city/prayers/:period", ctrl.GetPrayers)
}

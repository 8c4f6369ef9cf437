package controller

import (
	"strings"

	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
)

type PrayerController struct {
	Svc *service.PrayerService
}

func NewPrayerController(svc *service.PrayerService) *PrayerController {
	return &PrayerController{Svc: svc}
}

// GET /api/provinces
func (pc *PrayerController) ListProvinces(c *fiber.Ctx) error {
	provs, err := pc.Svc.ListProvinces(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar provinsi", provs, len(provs))
}

// GET /api/provinces/:province/cities
func (pc *PrayerController) ListCities(c *fiber.Ctx) error {
	cities, err := pc.Svc.ListCities(c.UserContext(), c.Params("province"))
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar kota", cities, len(cities))
}

// GET /api/cities/:city
func (pc *PrayerController) GetCity(c *fiber.Ctx) error {
	city, err := pc.Svc.GetCity(c.UserContext(), c.Params("city"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail kota", city)
}

// GET /api/cities/:city/prayers/:period
// period "YYYY-MM" → satu bulan (list), "YYYY-MM-DD" → satu hari.
func (pc *PrayerController) GetPrayers(c *fiber.Ctx) error {
	city := c.Params("city")
	period := strings.TrimSpace(c.Params("period"))
	ctx := c.UserContext()

	switch len(period) {
	case 7:
		list, err := pc.Svc.GetPrayersForMonth(ctx, city, period)
		if err != nil {
			return err
		}
		return helper.JsonList(c, "Jadwal sholat bulanan", list, len(list))
	case 10:
		p, err := pc.Svc.GetPrayerForDate(ctx, city, period)
		if err != nil {
			return err
		}
		return helper.JsonOK(c, "Jadwal sholat harian", p)
	}
	return apperr.InvalidInput("GetPrayers", "period %q must be YYYY-MM or YYYY-MM-DD", period)
}

// GET /api/cities/:city/prayers?from=YYYY-MM-DD&to=YYYY-MM-DD
func (pc *PrayerController) GetPrayersInRange(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		return apperr.InvalidInput("GetPrayersInRange", "query from & to wajib diisi")
	}
	list, err := pc.Svc.GetPrayersInRange(c.UserContext(), c.Params("city"), from, to)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Jadwal sholat", list, len(list))
}

// file: internals/features/prayers/schedules/service/repository.go
package service

import (
	"context"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
)

// Repository kontrak data-access yang wajib dipenuhi setiap backend
// (dataset statis, upstream HTTP, Postgres, Mongo, cache Redis).
//
// Semua method read-only. Kota yang tidak dikenal → apperr.ErrCityNotFound,
// tanggal tanpa jadwal → apperr.ErrScheduleNotFound, sumber data tidak bisa
// dihubungi → apperr.ErrUpstreamUnavailable.
type Repository interface {
	// GetCity mencari kota berdasarkan id atau slug, lengkap dengan prayers
	// terurut per tanggal.
	GetCity(ctx context.Context, idOrSlug string) (dto.CityData, error)

	// GetPrayerForDate jadwal satu kota (id atau slug) pada tanggal date.
	GetPrayerForDate(ctx context.Context, cityIDOrSlug string, date time.Time) (dto.Prayer, error)

	// GetPrayersInRange jadwal [from, to] inklusif, terurut. Kosong bukan error.
	GetPrayersInRange(ctx context.Context, cityIDOrSlug string, from, to time.Time) ([]dto.Prayer, error)

	// ListProvinces semua provinsi, terurut nama.
	ListProvinces(ctx context.Context) ([]dto.ProvinceSummary, error)

	// ListCities kota dalam satu provinsi (id atau slug), terurut nama.
	ListCities(ctx context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error)
}

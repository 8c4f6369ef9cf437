package repository

import (
	"context"
	"errors"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/model"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostgresRepository lookup langsung ke tabel provinces / cities / prayers.
type PostgresRepository struct {
	db *gorm.DB
}

var _ service.Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// dbErr: ErrRecordNotFound → notFound, sisanya UpstreamUnavailable.
func dbErr(op string, err error, notFound func() error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound()
	}
	return apperr.Upstream(op, err)
}

// findCity cari by id dulu, lalu by slug.
func (r *PostgresRepository) findCity(ctx context.Context, op, idOrSlug string, preload ...func(*gorm.DB) *gorm.DB) (model.CityModel, error) {
	key, slug := helper.LookupKey(idOrSlug)
	q := r.db.WithContext(ctx).Preload("Province")
	for _, p := range preload {
		q = p(q)
	}
	q = q.Session(&gorm.Session{})

	var m model.CityModel
	err := q.Scopes(cityByID(key)).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = q.Scopes(cityBySlug(slug)).Take(&m).Error
	}
	return m, dbErr(op, err, func() error { return apperr.CityNotFound(op, idOrSlug) })
}

func withPrayers(db *gorm.DB) *gorm.DB {
	return db.Preload("Prayers", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("prayer_date ASC")
	})
}

// Scope query per lookup.

func cityByID(id string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where("city_id = ?", id) }
}

func cityBySlug(slug string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where("city_slug = ?", slug) }
}

func prayerOnDate(cityID, day string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("prayer_city_id = ? AND prayer_date = ?", cityID, day)
	}
}

func prayersBetween(cityID, from, to string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("prayer_city_id = ? AND prayer_date BETWEEN ? AND ?", cityID, from, to).
			Order("prayer_date ASC")
	}
}

func provincesByName(db *gorm.DB) *gorm.DB {
	return db.Order("LOWER(province_name) ASC, province_id ASC")
}

func citiesOfProvince(provinceID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("city_province_id = ?", provinceID).Order("city_name ASC")
	}
}

func citiesWithSlugs(slugs []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("city_slug = ANY(?)", pq.Array(slugs)).Order("city_slug ASC")
	}
}

func (r *PostgresRepository) GetCity(ctx context.Context, idOrSlug string) (dto.CityData, error) {
	m, err := r.findCity(ctx, "GetCity", idOrSlug, withPrayers)
	if err != nil {
		return dto.CityData{}, err
	}
	return dto.FromCityModel(m), nil
}

func (r *PostgresRepository) GetPrayerForDate(ctx context.Context, cityIDOrSlug string, date time.Time) (dto.Prayer, error) {
	const op = "GetPrayerForDate"
	city, err := r.findCity(ctx, op, cityIDOrSlug)
	if err != nil {
		return dto.Prayer{}, err
	}
	day := date.Format(dbtime.DateLayout)

	var p model.PrayerModel
	err = r.db.WithContext(ctx).Scopes(prayerOnDate(city.CityID, day)).Take(&p).Error
	if err != nil {
		return dto.Prayer{}, dbErr(op, err, func() error { return apperr.ScheduleNotFound(op, city.CityID, day) })
	}
	return dto.FromPrayerModel(p), nil
}

func (r *PostgresRepository) GetPrayersInRange(ctx context.Context, cityIDOrSlug string, from, to time.Time) ([]dto.Prayer, error) {
	const op = "GetPrayersInRange"
	city, err := r.findCity(ctx, op, cityIDOrSlug)
	if err != nil {
		return nil, err
	}

	var rows []model.PrayerModel
	if err := r.db.WithContext(ctx).
		Scopes(prayersBetween(city.CityID, from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout))).
		Find(&rows).Error; err != nil {
		return nil, apperr.Upstream(op, err)
	}

	out := make([]dto.Prayer, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.FromPrayerModel(p))
	}
	return out, nil
}

func (r *PostgresRepository) ListProvinces(ctx context.Context) ([]dto.ProvinceSummary, error) {
	var rows []model.ProvinceModel
	if err := r.db.WithContext(ctx).Scopes(provincesByName).Find(&rows).Error; err != nil {
		return nil, apperr.Upstream("ListProvinces", err)
	}
	out := make([]dto.ProvinceSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.FromProvinceModel(p))
	}
	return out, nil
}

func (r *PostgresRepository) ListCities(ctx context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error) {
	const op = "ListCities"
	key, slug := helper.LookupKey(provinceIDOrSlug)

	var prov model.ProvinceModel
	err := r.db.WithContext(ctx).Where("province_id = ?", key).Take(&prov).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).Where("province_slug = ?", slug).Take(&prov).Error
	}
	if err != nil {
		return nil, dbErr(op, err, func() error { return apperr.ProvinceNotFound(op, provinceIDOrSlug) })
	}

	var rows []model.CityModel
	if err := r.db.WithContext(ctx).Scopes(citiesOfProvince(prov.ProvinceID)).Find(&rows).Error; err != nil {
		return nil, apperr.Upstream(op, err)
	}

	out := make([]dto.CitySummary, 0, len(rows))
	for _, c := range rows {
		c.Province = &prov
		out = append(out, dto.FromCityModel(c).Summary())
	}
	return out, nil
}

// CitiesBySlugs ambil banyak kota sekaligus (tanpa prayers). Slug yang
// tidak ada dilewati saja.
func (r *PostgresRepository) CitiesBySlugs(ctx context.Context, slugs []string) ([]dto.CitySummary, error) {
	if len(slugs) == 0 {
		return []dto.CitySummary{}, nil
	}
	var rows []model.CityModel
	if err := r.db.WithContext(ctx).
		Preload("Province").
		Scopes(citiesWithSlugs(slugs)).
		Find(&rows).Error; err != nil {
		return nil, apperr.Upstream("CitiesBySlugs", err)
	}
	out := make([]dto.CitySummary, 0, len(rows))
	for _, c := range rows {
		out = append(out, dto.FromCityModel(c).Summary())
	}
	return out, nil
}

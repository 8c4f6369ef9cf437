package repository

import (
	"errors"
	"testing"

	"jadwalsholat_backend/internals/features/prayers/schedules/model"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB: dialect postgres tanpa koneksi, query hanya dirender.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=jadwal dbname=jadwal sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestPostgresCityLookupSQL(t *testing.T) {
	db := dryRunDB(t)

	byID := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var m model.CityModel
		return tx.Scopes(cityByID("city-jkt")).Take(&m)
	})
	assert.Contains(t, byID, `FROM "cities" WHERE city_id = 'city-jkt'`)
	assert.Contains(t, byID, "LIMIT 1")

	bySlug := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var m model.CityModel
		return tx.Scopes(cityBySlug("kota-jakarta")).Take(&m)
	})
	assert.Contains(t, bySlug, `WHERE city_slug = 'kota-jakarta'`)
}

func TestPostgresPrayerSQL(t *testing.T) {
	db := dryRunDB(t)

	day := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var p model.PrayerModel
		return tx.Scopes(prayerOnDate("city-jkt", "2025-03-01")).Take(&p)
	})
	assert.Contains(t, day, `FROM "prayers" WHERE prayer_city_id = 'city-jkt' AND prayer_date = '2025-03-01'`)

	rng := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.PrayerModel
		return tx.Scopes(prayersBetween("city-jkt", "2025-03-01", "2025-03-31")).Find(&rows)
	})
	assert.Contains(t, rng, `prayer_date BETWEEN '2025-03-01' AND '2025-03-31'`)
	assert.Contains(t, rng, "ORDER BY prayer_date ASC")
}

func TestPostgresListingSQL(t *testing.T) {
	db := dryRunDB(t)

	provs := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.ProvinceModel
		return tx.Scopes(provincesByName).Find(&rows)
	})
	assert.Contains(t, provs, `FROM "provinces" ORDER BY LOWER(province_name) ASC, province_id ASC`)

	cities := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.CityModel
		return tx.Scopes(citiesOfProvince("prov-jabar")).Find(&rows)
	})
	assert.Contains(t, cities, `WHERE city_province_id = 'prov-jabar' ORDER BY city_name ASC`)

	bySlugs := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.CityModel
		return tx.Scopes(citiesWithSlugs([]string{"kota-bandung", "kota-jakarta"})).Find(&rows)
	})
	assert.Contains(t, bySlugs, "city_slug = ANY(")
	assert.Contains(t, bySlugs, "kota-bandung")
	assert.Contains(t, bySlugs, "ORDER BY city_slug ASC")
}

func TestDBErrMapping(t *testing.T) {
	notFound := func() error { return apperr.CityNotFound("GetCity", "x") }

	assert.NoError(t, dbErr("GetCity", nil, notFound))

	err := dbErr("GetCity", gorm.ErrRecordNotFound, notFound)
	assert.ErrorIs(t, err, apperr.ErrCityNotFound)

	err = dbErr("GetCity", errors.New("connection refused"), notFound)
	assert.True(t, apperr.IsUpstreamUnavailable(err))
	assert.False(t, apperr.IsNotFound(err))
}

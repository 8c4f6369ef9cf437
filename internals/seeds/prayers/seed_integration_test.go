package prayers

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"jadwalsholat_backend/internals/configs"
	database "jadwalsholat_backend/internals/databases"
	"jadwalsholat_backend/internals/features/prayers/schedules/model"
	"jadwalsholat_backend/internals/features/prayers/schedules/repository"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testPostgres: butuh DB_HOST (dan DB_* lain) di ENV, selain itu skip.
func testPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST kosong, test PostgreSQL dilewati")
	}
	cfg, err := configs.LoadConfig("")
	require.NoError(t, err)

	db, err := database.ConnectDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, database.Migrate(ctx, db))
	return db
}

// uniqueDataset: id dan slug diberi suffix supaya tidak bentrok dengan data lain.
func uniqueDataset(t *testing.T, suffix string) string {
	t.Helper()
	body := strings.NewReplacer(
		"city-smg", "city-smg-"+suffix,
		"smg-2", "smg-2-"+suffix,
		"kota-semarang", "kota-semarang-"+suffix,
		"prov-jateng", "prov-jateng-"+suffix,
		"jawa-tengah", "jawa-tengah-"+suffix,
	).Replace(dataset)
	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPostgresSeedAndLookups(t *testing.T) {
	db := testPostgres(t)
	ctx := context.Background()

	suffix := strconv.FormatInt(time.Now().UnixNano(), 36)
	cityID, provID := "city-smg-"+suffix, "prov-jateng-"+suffix
	t.Cleanup(func() {
		db.Where("prayer_city_id = ?", cityID).Delete(&model.PrayerModel{})
		db.Where("city_id = ?", cityID).Delete(&model.CityModel{})
		db.Where("province_id = ?", provID).Delete(&model.ProvinceModel{})
	})

	path := uniqueDataset(t, suffix)
	res, err := SeedPrayersFromFile(ctx, db, path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Provinces: 1, Cities: 1, Prayers: 2}, res)

	// upsert ulang tidak menggandakan baris
	_, err = SeedPrayersFromFile(ctx, db, path, zap.NewNop())
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Model(&model.PrayerModel{}).Where("prayer_city_id = ?", cityID).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	repo := repository.NewPostgresRepository(db)

	byID, err := repo.GetCity(ctx, cityID)
	require.NoError(t, err)
	bySlug, err := repo.GetCity(ctx, " Kota-Semarang-"+strings.ToUpper(suffix)+" ")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, bySlug.ID)
	assert.Equal(t, "jawa-tengah-"+suffix, byID.Province.Slug)

	_, err = repo.GetCity(ctx, "kota-tidak-ada-"+suffix)
	assert.ErrorIs(t, err, apperr.ErrCityNotFound)

	p, err := repo.GetPrayerForDate(ctx, cityID, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "smg-2-"+suffix, p.ID)
	assert.Equal(t, "15:00", p.Time.Ashar.String())

	_, err = repo.GetPrayerForDate(ctx, cityID, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, apperr.ErrScheduleNotFound)

	rng, err := repo.GetPrayersInRange(ctx, cityID,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rng, 2)
	assert.Equal(t, "2025-03-01", rng[0].Date)
	assert.Equal(t, "2025-03-02", rng[1].Date)

	cities, err := repo.ListCities(ctx, "jawa-tengah-"+suffix)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, cityID, cities[0].ID)

	_, err = repo.ListCities(ctx, "papua-"+suffix)
	assert.ErrorIs(t, err, apperr.ErrProvinceNotFound)
}

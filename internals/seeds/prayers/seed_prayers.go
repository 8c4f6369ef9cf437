package prayers

import (
	"context"
	"errors"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/model"
	"jadwalsholat_backend/internals/features/prayers/schedules/repository"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 500

type Result struct {
	Provinces int `json:"provinces"`
	Cities    int `json:"cities"`
	Prayers   int `json:"prayers"`
}

// loadValidated: baca file, isi id prayer yang kosong, validasi penuh.
func loadValidated(path string) (*service.Dataset, error) {
	cities, err := repository.LoadCities(path)
	if err != nil {
		return nil, err
	}
	fillMissingIDs(cities)
	return service.NewDataset(cities)
}

func fillMissingIDs(cities []dto.CityData) {
	for i := range cities {
		for j := range cities[i].Prayers {
			if cities[i].Prayers[j].ID == "" {
				cities[i].Prayers[j].ID = uuid.NewString()
			}
		}
	}
}

type rows struct {
	provinces []model.ProvinceModel
	cities    []model.CityModel
	prayers   []model.PrayerModel
}

func buildRows(ds *service.Dataset) (rows, error) {
	var out rows
	provs, _ := ds.ListProvinces(context.Background())
	for _, p := range provs {
		out.provinces = append(out.provinces, p.ToModel())
	}
	for _, c := range ds.CityData() {
		out.cities = append(out.cities, c.ToModel())
		for _, p := range c.Prayers {
			m, err := p.ToModel()
			if err != nil {
				return rows{}, apperr.InvalidInput("buildRows", "prayer %s: %v", p.ID, err)
			}
			out.prayers = append(out.prayers, m)
		}
	}
	return out, nil
}

// classify: unique violation (23505) = data bentrok dengan isi DB.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.InvalidInput(op, "conflict on %s: %s", pgErr.ConstraintName, pgErr.Detail)
	}
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	return apperr.Upstream(op, err)
}

// =========================
// PostgreSQL
// =========================

// Upsert per tabel: conflict di id (prayers: unique city + tanggal),
// kolom created_at tidak ikut diubah.
var (
	provinceUpsert = clause.OnConflict{
		Columns:   []clause.Column{{Name: "province_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"province_name", "province_slug", "province_updated_at"}),
	}
	cityUpsert = clause.OnConflict{
		Columns: []clause.Column{{Name: "city_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"city_name", "city_slug", "city_province_id",
			"city_latitude", "city_longitude", "city_updated_at",
		}),
	}
	prayerUpsert = clause.OnConflict{
		Columns: []clause.Column{{Name: "prayer_city_id"}, {Name: "prayer_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"prayer_imsak", "prayer_subuh", "prayer_terbit", "prayer_dhuha",
			"prayer_dzuhur", "prayer_ashar", "prayer_maghrib", "prayer_isya",
			"prayer_updated_at",
		}),
	}
)

func SeedPrayersFromFile(ctx context.Context, db *gorm.DB, path string, log *zap.Logger) (Result, error) {
	log.Info("📥 Membaca file", zap.String("path", path))
	ds, err := loadValidated(path)
	if err != nil {
		return Result{}, err
	}
	return SeedPrayers(ctx, db, ds, log)
}

// SeedPrayers upsert semua baris dalam satu transaksi.
func SeedPrayers(ctx context.Context, db *gorm.DB, ds *service.Dataset, log *zap.Logger) (Result, error) {
	const op = "SeedPrayers"
	start := time.Now()

	r, err := buildRows(ds)
	if err != nil {
		return Result{}, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkSlugOwners(ctx, tx, r.cities); err != nil {
			return err
		}

		if len(r.provinces) > 0 {
			if err := tx.Clauses(provinceUpsert).Create(&r.provinces).Error; err != nil {
				return err
			}
		}

		if len(r.cities) > 0 {
			if err := tx.Clauses(cityUpsert).Create(&r.cities).Error; err != nil {
				return err
			}
		}

		if len(r.prayers) > 0 {
			if err := tx.Clauses(prayerUpsert).CreateInBatches(&r.prayers, batchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("❌ Gagal import", zap.Error(err))
		return Result{}, classify(op, err)
	}

	res := Result{Provinces: len(r.provinces), Cities: len(r.cities), Prayers: len(r.prayers)}
	log.Info("✅ Import selesai",
		zap.Int("provinces", res.Provinces),
		zap.Int("cities", res.Cities),
		zap.Int("prayers", res.Prayers),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// checkSlugOwners: slug yang sudah dipakai kota lain (id beda) ditolak
// sebelum insert supaya pesan errornya jelas.
func checkSlugOwners(ctx context.Context, tx *gorm.DB, cities []model.CityModel) error {
	if len(cities) == 0 {
		return nil
	}
	want := make(map[string]string, len(cities))
	slugs := make([]string, 0, len(cities))
	for _, c := range cities {
		want[c.CitySlug] = c.CityID
		slugs = append(slugs, c.CitySlug)
	}

	existing, err := repository.NewPostgresRepository(tx).CitiesBySlugs(ctx, slugs)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if id := want[e.Slug]; id != e.ID {
			return apperr.InvalidInput("SeedPrayers", "slug %q already belongs to city %s (import wants %s)", e.Slug, e.ID, id)
		}
	}
	return nil
}

// =========================
// MongoDB
// =========================

func SeedPrayersToMongo(ctx context.Context, mdb *mongo.Database, path string, log *zap.Logger) (Result, error) {
	log.Info("📥 Membaca file", zap.String("path", path))
	ds, err := loadValidated(path)
	if err != nil {
		return Result{}, err
	}

	repo := repository.NewMongoRepository(mdb)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return Result{}, apperr.Upstream("SeedPrayersToMongo", err)
	}
	n, err := repo.UpsertCities(ctx, ds.CityData())
	if err != nil {
		log.Error("❌ Gagal import", zap.Int("written", n), zap.Error(err))
		return Result{}, err
	}

	st := ds.Stats()
	res := Result{Provinces: st.Provinces, Cities: n, Prayers: st.Prayers}
	log.Info("✅ Import MongoDB selesai", zap.Int("cities", res.Cities), zap.Int("prayers", res.Prayers))
	return res, nil
}

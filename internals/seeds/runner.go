package seeds

import (
	"context"
	"fmt"

	database "jadwalsholat_backend/internals/databases"
	prayers "jadwalsholat_backend/internals/seeds/prayers"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunAllSeeds migrasi tabel lalu import dataset jadwal ke PostgreSQL.
func RunAllSeeds(ctx context.Context, db *gorm.DB, dataFile string, log *zap.Logger) (prayers.Result, error) {
	if err := database.Migrate(ctx, db); err != nil {
		return prayers.Result{}, fmt.Errorf("migrate: %w", err)
	}
	return prayers.SeedPrayersFromFile(ctx, db, dataFile, log)
}

// RunMongoSeeds import dataset jadwal ke MongoDB (index dibuat otomatis).
func RunMongoSeeds(ctx context.Context, mdb *mongo.Database, dataFile string, log *zap.Logger) (prayers.Result, error) {
	return prayers.SeedPrayersToMongo(ctx, mdb, dataFile, log)
}

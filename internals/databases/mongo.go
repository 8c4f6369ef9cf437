package database

import (
	"context"
	"fmt"
	"time"

	"jadwalsholat_backend/internals/configs"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongo konek + ping. Pemanggil wajib Disconnect.
func ConnectMongo(ctx context.Context, cfg configs.Config, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info("✅ MongoDB connected.", zap.String("db", cfg.MongoDB))
	return client, client.Database(cfg.MongoDB), nil
}

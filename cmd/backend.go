package cmd

import (
	"context"
	"fmt"

	"jadwalsholat_backend/internals/configs"
	database "jadwalsholat_backend/internals/databases"
	"jadwalsholat_backend/internals/features/prayers/schedules/repository"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"go.uber.org/zap"
)

// backend Repository terpilih + cara menutupnya.
type backend struct {
	repo    service.Repository
	remote  *repository.RemoteRepository // non-nil kalau DATA_SOURCE=remote
	closers []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg configs.Config, log *zap.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.DataSource {
	case configs.SourceFile:
		repo, err := repository.NewFileRepository(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		st := repo.Stats()
		log.Info("dataset loaded", zap.String("file", cfg.DataFile), zap.Int("cities", st.Cities), zap.Int("prayers", st.Prayers))
		b.repo = repo

	case configs.SourceRemote:
		remote := repository.NewRemoteRepository(cfg.UpstreamURL, repository.RemoteOptions{
			Timeout: cfg.UpstreamTimeout(),
			RPS:     cfg.UpstreamRPS,
			Logger:  log,
		})
		b.repo, b.remote = remote, remote

	case configs.SourcePostgres:
		db, err := database.ConnectDB(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		b.closers = append(b.closers, func() { database.Close(db) })
		if err := database.WarmUp(ctx, db); err != nil {
			log.Warn("warm-up ping err", zap.Error(err))
		}
		b.repo = repository.NewPostgresRepository(db)

	case configs.SourceMongo:
		client, mdb, err := database.ConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Disconnect(context.Background()) })
		b.repo = repository.NewMongoRepository(mdb)

	default:
		return nil, fmt.Errorf("DATA_SOURCE tidak dikenal: %q", cfg.DataSource)
	}

	if cfg.CacheEnabled {
		rdb, err := database.ConnectRedis(ctx, cfg, log)
		if err != nil {
			// cache opsional; lanjut tanpa cache
			log.Warn("redis tidak tersedia, cache dimatikan", zap.Error(err))
		} else {
			b.closers = append(b.closers, func() { _ = rdb.Close() })
			b.repo = repository.NewCachedRepository(b.repo, repository.RedisStore{Rdb: rdb}, repository.CacheOptions{
				FreshTTL: cfg.CacheTTL(),
				StaleTTL: cfg.CacheStaleTTL(),
				Logger:   log.Named("cache"),
			})
		}
	}
	return b, nil
}

func newPrayerService(b *backend, cfg configs.Config, log *zap.Logger) *service.PrayerService {
	return service.NewPrayerService(b.repo,
		service.WithLogger(log),
		service.WithLocation(dbtime.LoadLocation(cfg.Timezone)),
	)
}

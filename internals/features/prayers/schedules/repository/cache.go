package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheStore penyimpanan byte sederhana; RedisStore untuk produksi.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type RedisStore struct {
	Rdb *redis.Client
}

func (s RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.Rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (s RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.Rdb.Set(ctx, key, val, ttl).Err()
}

type CacheOptions struct {
	Prefix   string        // default "jadwal:"
	FreshTTL time.Duration // default 10 menit
	StaleTTL time.Duration // default 24 jam; minimal FreshTTL
	Logger   *zap.Logger
	Now      func() time.Time
}

// CachedRepository read-through cache di depan Repository lain.
// Entry lebih tua dari FreshTTL dimuat ulang; kalau backend sedang
// UpstreamUnavailable, entry basi (≤ StaleTTL) tetap dilayani.
// NotFound & InvalidInput tidak pernah di-cache.
type CachedRepository struct {
	inner service.Repository
	store CacheStore
	opt   CacheOptions
}

var _ service.Repository = (*CachedRepository)(nil)

func NewCachedRepository(inner service.Repository, store CacheStore, opt CacheOptions) *CachedRepository {
	if opt.Prefix == "" {
		opt.Prefix = "jadwal:"
	}
	if opt.FreshTTL <= 0 {
		opt.FreshTTL = 10 * time.Minute
	}
	if opt.StaleTTL < opt.FreshTTL {
		opt.StaleTTL = 24 * time.Hour
		if opt.StaleTTL < opt.FreshTTL {
			opt.StaleTTL = opt.FreshTTL
		}
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &CachedRepository{inner: inner, store: store, opt: opt}
}

type cacheEntry[T any] struct {
	StoredAt int64 `json:"stored_at"` // unix milli
	Value    T     `json:"value"`
}

// cached: ambil dari store kalau masih segar, kalau tidak panggil load.
func cached[T any](ctx context.Context, r *CachedRepository, key string, load func() (T, error)) (T, error) {
	key = r.opt.Prefix + key
	log := r.opt.Logger

	var entry cacheEntry[T]
	hit := false
	if b, err := r.store.Get(ctx, key); err == nil {
		if err := sonic.Unmarshal(b, &entry); err == nil {
			hit = true
		} else {
			log.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	now := r.opt.Now()
	if hit {
		age := now.Sub(time.UnixMilli(entry.StoredAt))
		if age < r.opt.FreshTTL {
			return entry.Value, nil
		}
	}

	val, err := load()
	if err != nil {
		if hit && apperr.IsUpstreamUnavailable(err) {
			log.Warn("serving stale cache entry", zap.String("key", key), zap.Error(err))
			return entry.Value, nil
		}
		var zero T
		return zero, err
	}

	b, err := sonic.Marshal(cacheEntry[T]{StoredAt: now.UnixMilli(), Value: val})
	if err == nil {
		err = r.store.Set(ctx, key, b, r.opt.StaleTTL)
	}
	if err != nil {
		log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return val, nil
}

func lookupKey(s string) string {
	k, _ := helper.LookupKey(s)
	return k
}

func (r *CachedRepository) GetCity(ctx context.Context, idOrSlug string) (dto.CityData, error) {
	return cached(ctx, r, "city:"+lookupKey(idOrSlug), func() (dto.CityData, error) {
		return r.inner.GetCity(ctx, idOrSlug)
	})
}

func (r *CachedRepository) GetPrayerForDate(ctx context.Context, cityIDOrSlug string, date time.Time) (dto.Prayer, error) {
	key := fmt.Sprintf("prayer:%s:%s", lookupKey(cityIDOrSlug), date.Format(dbtime.DateLayout))
	return cached(ctx, r, key, func() (dto.Prayer, error) {
		return r.inner.GetPrayerForDate(ctx, cityIDOrSlug, date)
	})
}

func (r *CachedRepository) GetPrayersInRange(ctx context.Context, cityIDOrSlug string, from, to time.Time) ([]dto.Prayer, error) {
	key := fmt.Sprintf("range:%s:%s:%s", lookupKey(cityIDOrSlug),
		from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout))
	return cached(ctx, r, key, func() ([]dto.Prayer, error) {
		return r.inner.GetPrayersInRange(ctx, cityIDOrSlug, from, to)
	})
}

func (r *CachedRepository) ListProvinces(ctx context.Context) ([]dto.ProvinceSummary, error) {
	return cached(ctx, r, "provinces", func() ([]dto.ProvinceSummary, error) {
		return r.inner.ListProvinces(ctx)
	})
}

func (r *CachedRepository) ListCities(ctx context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error) {
	return cached(ctx, r, "cities:"+lookupKey(provinceIDOrSlug), func() ([]dto.CitySummary, error) {
		return r.inner.ListCities(ctx, provinceIDOrSlug)
	})
}

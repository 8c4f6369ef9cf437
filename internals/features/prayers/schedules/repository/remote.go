package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/apperr"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const maxRemoteBody = 64 << 20

type RemoteOptions struct {
	Timeout time.Duration // default 15s
	RPS     float64       // <=0: tanpa limit
	Client  *http.Client
	Logger  *zap.Logger
}

// RemoteRepository mengambil dokumen dataset dari upstream HTTP.
// Dataset di-swap utuh; pembaca melihat versi lama atau baru, tidak campuran.
type RemoteRepository struct {
	url     string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger

	group   singleflight.Group
	current atomic.Pointer[service.Dataset]
}

var _ service.Repository = (*RemoteRepository)(nil)

func NewRemoteRepository(url string, opt RemoteOptions) *RemoteRepository {
	if opt.Timeout <= 0 {
		opt.Timeout = 15 * time.Second
	}
	client := opt.Client
	if client == nil {
		client = &http.Client{Timeout: opt.Timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opt.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opt.RPS), 1)
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteRepository{url: url, timeout: opt.Timeout, client: client, limiter: limiter, log: log}
}

// Refresh memuat ulang dataset. Kalau gagal, dataset lama tetap dipakai.
func (r *RemoteRepository) Refresh(ctx context.Context) error {
	_, err := r.load(ctx)
	return err
}

// Loaded true kalau sudah pernah berhasil fetch.
func (r *RemoteRepository) Loaded() bool { return r.current.Load() != nil }

func (r *RemoteRepository) dataset(ctx context.Context) (*service.Dataset, error) {
	if ds := r.current.Load(); ds != nil {
		return ds, nil
	}
	return r.load(ctx)
}

// load: fetch paralel digabung jadi satu request (singleflight).
func (r *RemoteRepository) load(ctx context.Context) (*service.Dataset, error) {
	ch := r.group.DoChan("dataset", func() (any, error) {
		// satu pemanggil yang batal tidak boleh membatalkan fetch bersama
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.fetch(fctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*service.Dataset), nil
	}
}

func (r *RemoteRepository) fetch(ctx context.Context) (*service.Dataset, error) {
	const op = "RemoteRepository.fetch"
	start := time.Now()

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, apperr.Upstream(op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("upstream fetch failed", zap.String("url", r.url), zap.Error(err))
		return nil, apperr.Upstream(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.log.Warn("upstream bad status", zap.String("url", r.url), zap.Int("status", resp.StatusCode))
		return nil, apperr.Upstream(op, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, apperr.Upstream(op, err)
	}

	cities, err := DecodeCities(body, FormatJSON)
	if err != nil {
		return nil, r.badPayload(op, err)
	}
	ds, err := service.NewDataset(cities)
	if err != nil {
		return nil, r.badPayload(op, err)
	}

	r.current.Store(ds)
	st := ds.Stats()
	r.log.Info("upstream dataset loaded",
		zap.String("url", r.url),
		zap.Int("cities", st.Cities),
		zap.Int("prayers", st.Prayers),
		zap.Duration("took", time.Since(start)),
	)
	return ds, nil
}

// payload rusak dari upstream bukan salah input pemanggil
func (r *RemoteRepository) badPayload(op string, err error) error {
	r.log.Warn("upstream payload rejected", zap.String("url", r.url), zap.Error(err))
	var ve *apperr.ValidationError
	if errors.As(err, &ve) || apperr.IsInvalidInput(err) {
		return &apperr.Error{Op: op, Msg: "invalid upstream payload", Err: fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)}
	}
	return apperr.Upstream(op, err)
}

// ============ Repository ============

func (r *RemoteRepository) GetCity(ctx context.Context, idOrSlug string) (dto.CityData, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return dto.CityData{}, err
	}
	return ds.GetCity(ctx, idOrSlug)
}

func (r *RemoteRepository) GetPrayerForDate(ctx context.Context, cityIDOrSlug string, date time.Time) (dto.Prayer, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return dto.Prayer{}, err
	}
	return ds.GetPrayerForDate(ctx, cityIDOrSlug, date)
}

func (r *RemoteRepository) GetPrayersInRange(ctx context.Context, cityIDOrSlug string, from, to time.Time) ([]dto.Prayer, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.GetPrayersInRange(ctx, cityIDOrSlug, from, to)
}

func (r *RemoteRepository) ListProvinces(ctx context.Context) ([]dto.ProvinceSummary, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.ListProvinces(ctx)
}

func (r *RemoteRepository) ListCities(ctx context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error) {
	ds, err := r.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.ListCities(ctx, provinceIDOrSlug)
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	scheduleService "jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/dbtime"
	routes "jadwalsholat_backend/internals/route"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const ManifestKey = "manifest.json"

// host palsu untuk request in-process; tidak pernah di-resolve
const renderBase = "http://jadwal.local"

type Options struct {
	BasePath    string // dicatat di manifest, default "/"
	Concurrency int    // render kota paralel, default 4
	Daily       bool   // tambah file per tanggal
	Logger      *zap.Logger
	Now         func() time.Time
}

type Manifest struct {
	GeneratedAt string   `json:"generated_at"`
	BasePath    string   `json:"base_path"`
	Cities      int      `json:"cities"`
	Files       []string `json:"files"`
}

// Exporter prerender seluruh route publik ke file JSON statis.
type Exporter struct {
	svc  *scheduleService.PrayerService
	app  *fiber.App
	sink Sink
	opt  Options
}

func NewExporter(svc *scheduleService.PrayerService, sink Sink, opt Options) *Exporter {
	if opt.BasePath == "" {
		opt.BasePath = "/"
	}
	if opt.Concurrency <= 0 {
		opt.Concurrency = 4
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Exporter{
		svc:  svc,
		app:  routes.NewApp(svc, opt.Logger.Named("render")),
		sink: sink,
		opt:  opt,
	}
}

// RenderError response non-200 saat prerender.
type RenderError struct {
	Route     string
	Status    int
	ErrorCode string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: status %d (%s)", e.Route, e.Status, e.ErrorCode)
}

type collector struct {
	mu    sync.Mutex
	files []string
}

func (c *collector) add(key string) {
	c.mu.Lock()
	c.files = append(c.files, key)
	c.mu.Unlock()
}

func keyFor(route string) string {
	return strings.TrimPrefix(route, "/") + ".json"
}

// render GET route in-process → sink.
func (e *Exporter) render(ctx context.Context, route string, out *collector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, renderBase+route, nil)
	if err != nil {
		return err
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		return fmt.Errorf("render %s: %w", route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("render %s: read body: %w", route, err)
	}
	if resp.StatusCode != http.StatusOK {
		var env struct {
			ErrorCode string `json:"error_code"`
		}
		_ = sonic.Unmarshal(body, &env)
		return &RenderError{Route: route, Status: resp.StatusCode, ErrorCode: env.ErrorCode}
	}

	key := keyFor(route)
	if err := e.sink.Put(ctx, key, body); err != nil {
		return err
	}
	out.add(key)
	return nil
}

// Run export penuh. Gagal di satu route membatalkan sisanya.
func (e *Exporter) Run(ctx context.Context) (Manifest, error) {
	start := e.opt.Now()
	log := e.opt.Logger
	out := &collector{}

	provinces, err := e.svc.ListProvinces(ctx)
	if err != nil {
		return Manifest{}, err
	}
	if err := e.render(ctx, "/api/provinces", out); err != nil {
		return Manifest{}, err
	}

	var citySlugs []string
	for _, p := range provinces {
		if err := e.render(ctx, "/api/provinces/"+p.Slug+"/cities", out); err != nil {
			return Manifest{}, err
		}
		cities, err := e.svc.ListCities(ctx, p.ID)
		if err != nil {
			return Manifest{}, err
		}
		for _, c := range cities {
			citySlugs = append(citySlugs, c.Slug)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opt.Concurrency)
	for _, slug := range citySlugs {
		g.Go(func() error {
			return e.renderCity(gctx, slug, out)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("export aborted", zap.Error(err))
		return Manifest{}, err
	}

	sort.Strings(out.files)
	m := Manifest{
		GeneratedAt: start.UTC().Format(time.RFC3339),
		BasePath:    e.opt.BasePath,
		Cities:      len(citySlugs),
		Files:       out.files,
	}
	b, err := sonic.ConfigStd.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := e.sink.Put(ctx, ManifestKey, b); err != nil {
		return Manifest{}, err
	}

	log.Info("export selesai",
		zap.String("sink", e.sink.Name()),
		zap.Int("cities", m.Cities),
		zap.Int("files", len(m.Files)),
		zap.Duration("took", time.Since(start)),
	)
	return m, nil
}

// renderCity: detail kota, tiap bulan yang punya jadwal, (opsional) tiap hari.
func (e *Exporter) renderCity(ctx context.Context, slug string, out *collector) error {
	base := "/api/cities/" + slug
	if err := e.render(ctx, base, out); err != nil {
		return err
	}

	city, err := e.svc.GetCity(ctx, slug)
	if err != nil {
		return err
	}
	months := make([]string, 0)
	seen := make(map[string]bool)
	for _, p := range city.Prayers {
		month := p.Date[:len(dbtime.MonthLayout)]
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}

	for _, m := range months {
		if err := e.render(ctx, base+"/prayers/"+m, out); err != nil {
			return err
		}
	}
	if e.opt.Daily {
		for _, p := range city.Prayers {
			if err := e.render(ctx, base+"/prayers/"+p.Date, out); err != nil {
				return err
			}
		}
	}
	return nil
}

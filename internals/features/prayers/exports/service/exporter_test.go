package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	scheduleService "jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDataset(t *testing.T) *scheduleService.Dataset {
	t.Helper()
	pt := dto.PrayerTime{
		Imsak: dbtime.MustParse("04:25"), Subuh: dbtime.MustParse("04:35"),
		Terbit: dbtime.MustParse("05:52"), Dhuha: dbtime.MustParse("06:20"),
		Dzuhur: dbtime.MustParse("11:58"), Ashar: dbtime.MustParse("15:15"),
		Maghrib: dbtime.MustParse("18:05"), Isya: dbtime.MustParse("19:17"),
	}
	dki := dto.ProvinceSummary{ID: "prov-dki", Name: "DKI Jakarta", Slug: "dki-jakarta"}
	jabar := dto.ProvinceSummary{ID: "prov-jabar", Name: "Jawa Barat", Slug: "jawa-barat"}
	mk := func(id, slug string, prov dto.ProvinceSummary, dates ...string) dto.CityData {
		c := dto.CityData{ID: id, Name: slug, Slug: slug, ProvinceID: prov.ID, Province: prov}
		for _, d := range dates {
			c.Prayers = append(c.Prayers, dto.Prayer{ID: id + d, Date: d, Time: pt, CityID: id})
		}
		return c
	}
	ds, err := scheduleService.NewDataset([]dto.CityData{
		mk("city-jkt", "kota-jakarta", dki, "2025-03-01", "2025-03-02", "2025-04-01"),
		mk("city-bdg", "kota-bandung", jabar, "2025-03-01"),
		mk("city-bgr", "kota-bogor", jabar),
	})
	require.NoError(t, err)
	return ds
}

func fixedNow() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

func TestExporterWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	svc := scheduleService.NewPrayerService(fixtureDataset(t))
	exp := NewExporter(svc, NewDirSink(dir), Options{BasePath: "/jadwal/", Concurrency: 2, Now: fixedNow})

	m, err := exp.Run(context.Background())
	require.NoError(t, err)

	want := []string{
		"api/cities/kota-bandung.json",
		"api/cities/kota-bandung/prayers/2025-03.json",
		"api/cities/kota-bogor.json",
		"api/cities/kota-jakarta.json",
		"api/cities/kota-jakarta/prayers/2025-03.json",
		"api/cities/kota-jakarta/prayers/2025-04.json",
		"api/provinces.json",
		"api/provinces/dki-jakarta/cities.json",
		"api/provinces/jawa-barat/cities.json",
	}
	assert.Equal(t, want, m.Files)
	assert.True(t, sort.StringsAreSorted(m.Files))
	assert.Equal(t, 3, m.Cities)
	assert.Equal(t, "/jadwal/", m.BasePath)
	assert.Equal(t, "2025-03-01T00:00:00Z", m.GeneratedAt)

	for _, f := range want {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f)))
		assert.NoError(t, err, f)
	}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestKey))
	require.NoError(t, err)
	var onDisk Manifest
	require.NoError(t, sonic.Unmarshal(raw, &onDisk))
	assert.Equal(t, m, onDisk)

	month, err := os.ReadFile(filepath.Join(dir, "api/cities/kota-jakarta/prayers/2025-03.json"))
	require.NoError(t, err)
	var env struct {
		Success bool         `json:"success"`
		Count   int          `json:"count"`
		Data    []dto.Prayer `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(month, &env))
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, "19:17", env.Data[1].Time.Isya.String())
}

func TestExporterDaily(t *testing.T) {
	sink := newMemSink()
	svc := scheduleService.NewPrayerService(fixtureDataset(t))
	m, err := NewExporter(svc, sink, Options{Daily: true}).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, m.Files, "api/cities/kota-jakarta/prayers/2025-03-02.json")
	assert.Contains(t, m.Files, "api/cities/kota-bandung/prayers/2025-03-01.json")
	assert.Len(t, m.Files, 13)
	assert.Contains(t, sink.keys(), ManifestKey)
}

// brokenRepo: range lookup selalu gagal seperti upstream mati.
type brokenRepo struct {
	*scheduleService.Dataset
}

func (b brokenRepo) GetPrayersInRange(context.Context, string, time.Time, time.Time) ([]dto.Prayer, error) {
	return nil, apperr.Upstream("GetPrayersInRange", errors.New("connection reset"))
}

func TestExporterAbortsOnRenderError(t *testing.T) {
	sink := newMemSink()
	svc := scheduleService.NewPrayerService(brokenRepo{fixtureDataset(t)})
	_, err := NewExporter(svc, sink, Options{}).Run(context.Background())
	require.Error(t, err)

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 503, re.Status)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", re.ErrorCode)
	assert.NotContains(t, sink.keys(), ManifestKey)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/jadwal/manifest.json",
		PublicURL("https://cdn.example.com/", "b", "oss-ap.aliyuncs.com", "jadwal/manifest.json"))
	assert.Equal(t, "https://b.oss-ap.aliyuncs.com/k.json",
		PublicURL("", "b", "https://oss-ap.aliyuncs.com/", "k.json"))
	assert.Equal(t, "", PublicURL("", "", "", "k.json"))
}

type memSink struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSink() *memSink { return &memSink{data: map[string][]byte{}} }

func (m *memSink) Name() string { return "mem" }

func (m *memSink) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memSink) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}

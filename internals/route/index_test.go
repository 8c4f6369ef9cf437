package routes

import (
	"io"
	"net/http/httptest"
	"testing"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	pt := dto.PrayerTime{
		Imsak: dbtime.MustParse("04:25"), Subuh: dbtime.MustParse("04:35"),
		Terbit: dbtime.MustParse("05:52"), Dhuha: dbtime.MustParse("06:20"),
		Dzuhur: dbtime.MustParse("11:58"), Ashar: dbtime.MustParse("15:15"),
		Maghrib: dbtime.MustParse("18:05"), Isya: dbtime.MustParse("19:17"),
	}
	prov := dto.ProvinceSummary{ID: "prov-dki", Name: "DKI Jakarta", Slug: "dki-jakarta"}
	ds, err := service.NewDataset([]dto.CityData{{
		ID: "city-jkt", Name: "Kota Jakarta", Slug: "kota-jakarta", ProvinceID: "prov-dki",
		Coordinate: dto.Coordinate{Latitude: -6.2, Longitude: 106.8}, Province: prov,
		Prayers: []dto.Prayer{
			{ID: "p-1", Date: "2025-03-01", Time: pt, CityID: "city-jkt"},
			{ID: "p-2", Date: "2025-03-02", Time: pt, CityID: "city-jkt"},
			{ID: "p-3", Date: "2025-04-01", Time: pt, CityID: "city-jkt"},
		},
	}})
	require.NoError(t, err)
	return NewApp(service.NewPrayerService(ds), zap.NewNop())
}

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	Count     int    `json:"count"`
	Data      any    `json:"data"`
}

func get(t *testing.T, app *fiber.App, path string) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, sonic.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func TestRoutesHappyPath(t *testing.T) {
	app := testApp(t)

	status, env := get(t, app, "/api/provinces")
	assert.Equal(t, 200, status)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Count)

	status, env = get(t, app, "/api/provinces/dki-jakarta/cities")
	assert.Equal(t, 200, status)
	assert.Equal(t, 1, env.Count)

	status, env = get(t, app, "/api/cities/kota-jakarta")
	assert.Equal(t, 200, status)
	city := env.Data.(map[string]any)
	assert.Equal(t, "city-jkt", city["id"])
	assert.Equal(t, "prov-dki", city["provinceId"])

	status, env = get(t, app, "/api/cities/kota-jakarta/prayers/2025-03")
	assert.Equal(t, 200, status)
	assert.Equal(t, 2, env.Count)

	status, env = get(t, app, "/api/cities/city-jkt/prayers/2025-03-02")
	assert.Equal(t, 200, status)
	day := env.Data.(map[string]any)
	assert.Equal(t, "2025-03-02", day["date"])
	assert.Equal(t, "04:25", day["time"].(map[string]any)["imsak"])

	status, env = get(t, app, "/api/cities/city-jkt/prayers?from=2025-03-01&to=2025-04-30")
	assert.Equal(t, 200, status)
	assert.Equal(t, 3, env.Count)
}

func TestRoutesErrors(t *testing.T) {
	app := testApp(t)

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/cities/atlantis", 404, "CITY_NOT_FOUND"},
		{"/api/cities/kota-jakarta/prayers/2025-03-20", 404, "SCHEDULE_NOT_FOUND"},
		{"/api/provinces/papua/cities", 404, "PROVINCE_NOT_FOUND"},
		{"/api/cities/kota-jakarta/prayers/2025-02-30", 400, "BAD_REQUEST"},
		{"/api/cities/kota-jakarta/prayers/2025", 400, "BAD_REQUEST"},
		{"/api/cities/kota-jakarta/prayers?from=2025-03-01", 400, "BAD_REQUEST"},
		{"/nope", 404, "NOT_FOUND"},
	}
	for _, tc := range cases {
		status, env := get(t, app, tc.path)
		assert.Equal(t, tc.status, status, tc.path)
		assert.False(t, env.Success, tc.path)
		assert.Equal(t, tc.code, env.ErrorCode, tc.path)
	}
}

func TestRequestIDHeader(t *testing.T) {
	app := testApp(t)
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliDataset = `[{
  "id": "city-jkt", "name": "Kota Jakarta", "slug": "kota-jakarta", "provinceId": "prov-dki",
  "coordinate": {"latitude": -6.2088, "longitude": 106.8456},
  "province": {"id": "prov-dki", "name": "DKI Jakarta", "slug": "dki-jakarta"},
  "prayers": [
    {"id": "p-1", "date": "2025-03-01", "cityId": "city-jkt",
     "time": {"imsak": "04:25", "subuh": "04:35", "terbit": "05:52", "dhuha": "06:20",
              "dzuhur": "11:58", "ashar": "15:15", "maghrib": "18:05", "isya": "19:17"}},
    {"id": "p-2", "date": "2025-03-02", "cityId": "city-jkt",
     "time": {"imsak": "04:25", "subuh": "04:35", "terbit": "05:52", "dhuha": "06:20",
              "dzuhur": "11:58", "ashar": "15:15", "maghrib": "18:05", "isya": "19:17"}}
  ]
}]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(cliDataset), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--source", "file", "--file", path}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(apperr.CityNotFound("x", "y")))
	assert.Equal(t, 2, exitCode(apperr.ScheduleNotFound("x", "c", "2025-01-01")))
	assert.Equal(t, 2, exitCode(apperr.ProvinceNotFound("x", "papua")))
	assert.Equal(t, 2, exitCode(apperr.InvalidInput("x", "bad")))
	assert.Equal(t, 3, exitCode(apperr.Upstream("x", errors.New("down"))))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestCityCommand(t *testing.T) {
	out, err := run(t, "city", "kota-jakarta")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, sonic.UnmarshalString(out, &got))
	assert.Equal(t, "city-jkt", got["id"])
	assert.NotContains(t, got, "prayers")
}

func TestPrayerCommand(t *testing.T) {
	out, err := run(t, "prayer", "city-jkt", "2025-03-02")
	require.NoError(t, err)
	assert.Contains(t, out, `"date": "2025-03-02"`)

	out, err = run(t, "prayer", "city-jkt", "2025-03")
	require.NoError(t, err)
	var month []map[string]any
	require.NoError(t, sonic.UnmarshalString(out, &month))
	assert.Len(t, month, 2)
}

func TestNextCommand(t *testing.T) {
	out, err := run(t, "next", "kota-jakarta", "--at", "2025-03-01T20:00:00+07:00")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "imsak"`)
	assert.Contains(t, out, `"date": "2025-03-02"`)
}

func TestLookupErrors(t *testing.T) {
	_, err := run(t, "city", "atlantis")
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, "prayer", "kota-jakarta", "2025-13-01")
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, "next", "kota-jakarta", "--at", "kemarin")
	assert.Equal(t, 2, exitCode(err))
}

func TestValidateAndExport(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)

	dist := t.TempDir()
	_, err = run(t, "export", "--out", dist)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dist, "manifest.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dist, "api", "cities", "kota-jakarta", "prayers", "2025-03.json"))
	assert.NoError(t, err)
}

package repository

import (
	"testing"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/features/prayers/schedules/service"

	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {
    "id": "city-jkt",
    "name": "Kota Jakarta",
    "slug": "kota-jakarta",
    "provinceId": "prov-dki",
    "coordinate": {"latitude": -6.2088, "longitude": 106.8456},
    "province": {"id": "prov-dki", "name": "DKI Jakarta", "slug": "dki-jakarta"},
    "prayers": [
      {
        "id": "p-2", "date": "2025-03-02", "cityId": "city-jkt",
        "time": {"imsak": "04:25", "subuh": "04:35", "terbit": "05:52", "dhuha": "06:20",
                 "dzuhur": "11:58", "ashar": "15:15", "maghrib": "18:05", "isya": "19:17"}
      },
      {
        "id": "p-1", "date": "2025-03-01", "cityId": "city-jkt",
        "time": {"imsak": "04:25", "subuh": "04:35", "terbit": "05:52", "dhuha": "06:20",
                 "dzuhur": "11:58", "ashar": "15:15", "maghrib": "18:05", "isya": "19:17"}
      }
    ]
  },
  {
    "id": "city-bdg",
    "name": "Kota Bandung",
    "slug": "kota-bandung",
    "provinceId": "prov-jabar",
    "coordinate": {"latitude": -6.9175, "longitude": 107.6191},
    "province": {"id": "prov-jabar", "name": "Jawa Barat", "slug": "jawa-barat"},
    "prayers": []
  }
]`

const sampleYAML = `data:
  - id: city-bgr
    name: Kota Bogor
    slug: kota-bogor
    provinceId: prov-jabar
    coordinate:
      latitude: -6.595
      longitude: 106.816
    province:
      id: prov-jabar
      name: Jawa Barat
      slug: jawa-barat
    prayers:
      - id: p-bgr-1
        date: "2025-03-01"
        cityId: city-bgr
        time:
          imsak: "04:24"
          subuh: "04:34"
          terbit: "05:51"
          dhuha: "06:19"
          dzuhur: "11:57"
          ashar: "15:14"
          maghrib: "18:04"
          isya: "19:16"
`

func mustCity(t interface {
	Helper()
	Fatalf(string, ...any)
}) dto.CityData {
	t.Helper()
	cities, err := DecodeCities([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return cities[0]
}

// sampleCities fixture JSON yang sudah dinormalkan & divalidasi lewat Dataset
// (prayers terurut tanggal), siap ditulis ke backend database.
func sampleCities(t *testing.T) []dto.CityData {
	t.Helper()
	cities, err := DecodeCities([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	ds, err := service.NewDataset(cities)
	require.NoError(t, err)
	return ds.CityData()
}

// cloneCity salinan kota dengan id/nama/slug baru; prayers ikut dipindah.
func cloneCity(c dto.CityData, id, name, slug string) dto.CityData {
	c.ID, c.Name, c.Slug = id, name, slug
	prayers := make([]dto.Prayer, len(c.Prayers))
	for i, p := range c.Prayers {
		p.ID = id + "-" + p.Date
		p.CityID = id
		prayers[i] = p
	}
	c.Prayers = prayers
	return c
}

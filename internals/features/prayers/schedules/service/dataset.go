package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"
)

/* =========================================================
   Dataset: arena + index, immutable setelah NewDataset.
   Province disimpan sekali di tabel provinces; CityData.province
   diturunkan saat dibaca, jadi tidak ada dua salinan yang bisa beda.
   ========================================================= */

type provinceRow struct {
	summary dto.ProvinceSummary
	cities  []int // index ke Dataset.cities, terurut nama
}

type cityRow struct {
	id         string
	name       string
	slug       string
	province   int
	coordinate dto.Coordinate
	prayers    []dto.Prayer   // terurut tanggal
	byDate     map[string]int // "YYYY-MM-DD" → index prayers
}

type Dataset struct {
	provinces      []provinceRow
	provinceByID   map[string]int
	provinceBySlug map[string]int

	cities     []cityRow
	cityByID   map[string]int
	cityBySlug map[string]int

	prayerCount int
}

var _ Repository = (*Dataset)(nil)

// NewDataset menormalkan & memvalidasi seluruh kota sekaligus. Semua
// pelanggaran dikumpulkan dalam satu *apperr.ValidationError.
func NewDataset(cities []dto.CityData) (*Dataset, error) {
	ds := &Dataset{
		provinceByID:   make(map[string]int),
		provinceBySlug: make(map[string]int),
		cityByID:       make(map[string]int, len(cities)),
		cityBySlug:     make(map[string]int, len(cities)),
	}
	ve := &apperr.ValidationError{Op: "NewDataset"}

	for i, raw := range cities {
		c := dto.NormalizeCityData(raw)
		path := fmt.Sprintf("cities[%d]", i)
		if issues := dto.ValidateCityData(c); len(issues.Issues) > 0 {
			ve.Merge(path, issues)
			continue
		}

		if j, dup := ds.cityByID[c.ID]; dup {
			ve.Add(path+".id", "duplicate city id %q (also %s)", c.ID, ds.cities[j].slug)
			continue
		}
		if j, dup := ds.cityBySlug[c.Slug]; dup {
			ve.Add(path+".slug", "duplicate city slug %q (also id %s)", c.Slug, ds.cities[j].id)
			continue
		}

		pi, err := ds.internProvince(c.Province)
		if err != nil {
			ve.Add(path+".province", "%v", err)
			continue
		}

		row := cityRow{
			id:         c.ID,
			name:       c.Name,
			slug:       c.Slug,
			province:   pi,
			coordinate: c.Coordinate,
			prayers:    c.Prayers,
			byDate:     make(map[string]int, len(c.Prayers)),
		}
		for k, p := range c.Prayers {
			row.byDate[p.Date] = k
		}

		idx := len(ds.cities)
		ds.cities = append(ds.cities, row)
		ds.cityByID[c.ID] = idx
		ds.cityBySlug[c.Slug] = idx
		ds.provinces[pi].cities = append(ds.provinces[pi].cities, idx)
		ds.prayerCount += len(c.Prayers)
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	for i := range ds.provinces {
		ids := ds.provinces[i].cities
		sort.SliceStable(ids, func(a, b int) bool {
			return ds.cities[ids[a]].name < ds.cities[ids[b]].name
		})
	}
	return ds, nil
}

// internProvince memasukkan ringkasan provinsi ke arena. Satu id harus
// selalu punya nama & slug yang sama di semua kota.
func (ds *Dataset) internProvince(p dto.ProvinceSummary) (int, error) {
	if i, ok := ds.provinceByID[p.ID]; ok {
		have := ds.provinces[i].summary
		if have != p {
			return 0, fmt.Errorf("province %q is {%s, %s} here but {%s, %s} elsewhere",
				p.ID, p.Name, p.Slug, have.Name, have.Slug)
		}
		return i, nil
	}
	if i, ok := ds.provinceBySlug[p.Slug]; ok {
		return 0, fmt.Errorf("province slug %q already used by province %q", p.Slug, ds.provinces[i].summary.ID)
	}
	i := len(ds.provinces)
	ds.provinces = append(ds.provinces, provinceRow{summary: p})
	ds.provinceByID[p.ID] = i
	ds.provinceBySlug[p.Slug] = i
	return i, nil
}

/* =========================================================
   Stats
   ========================================================= */

type Stats struct {
	Provinces int `json:"provinces"`
	Cities    int `json:"cities"`
	Prayers   int `json:"prayers"`
}

func (ds *Dataset) Stats() Stats {
	return Stats{Provinces: len(ds.provinces), Cities: len(ds.cities), Prayers: ds.prayerCount}
}

/* =========================================================
   Lookups (Repository)
   ========================================================= */

func (ds *Dataset) findCity(idOrSlug string) (int, bool) {
	key, slug := helper.LookupKey(idOrSlug)
	if i, ok := ds.cityByID[key]; ok {
		return i, true
	}
	i, ok := ds.cityBySlug[slug]
	return i, ok
}

func (ds *Dataset) findProvince(idOrSlug string) (int, bool) {
	key, slug := helper.LookupKey(idOrSlug)
	if i, ok := ds.provinceByID[key]; ok {
		return i, true
	}
	i, ok := ds.provinceBySlug[slug]
	return i, ok
}

func (ds *Dataset) summary(row cityRow) dto.CitySummary {
	prov := ds.provinces[row.province].summary
	return dto.CitySummary{
		ID:         row.id,
		Name:       row.name,
		Slug:       row.slug,
		ProvinceID: prov.ID,
		Coordinate: row.coordinate,
		Province:   prov,
	}
}

func (ds *Dataset) GetCity(_ context.Context, idOrSlug string) (dto.CityData, error) {
	i, ok := ds.findCity(idOrSlug)
	if !ok {
		return dto.CityData{}, apperr.CityNotFound("GetCity", idOrSlug)
	}
	row := ds.cities[i]
	s := ds.summary(row)

	// salin supaya pemanggil tidak bisa mengubah arena
	prayers := make([]dto.Prayer, len(row.prayers))
	copy(prayers, row.prayers)

	return dto.CityData{
		ID:         s.ID,
		Name:       s.Name,
		Slug:       s.Slug,
		ProvinceID: s.ProvinceID,
		Coordinate: s.Coordinate,
		Province:   s.Province,
		Prayers:    prayers,
	}, nil
}

func (ds *Dataset) GetPrayerForDate(_ context.Context, cityIDOrSlug string, date time.Time) (dto.Prayer, error) {
	i, ok := ds.findCity(cityIDOrSlug)
	if !ok {
		return dto.Prayer{}, apperr.CityNotFound("GetPrayerForDate", cityIDOrSlug)
	}
	row := ds.cities[i]
	key := date.Format(dbtime.DateLayout)
	k, ok := row.byDate[key]
	if !ok {
		return dto.Prayer{}, apperr.ScheduleNotFound("GetPrayerForDate", row.id, key)
	}
	return row.prayers[k], nil
}

func (ds *Dataset) GetPrayersInRange(_ context.Context, cityIDOrSlug string, from, to time.Time) ([]dto.Prayer, error) {
	i, ok := ds.findCity(cityIDOrSlug)
	if !ok {
		return nil, apperr.CityNotFound("GetPrayersInRange", cityIDOrSlug)
	}
	prayers := ds.cities[i].prayers
	lo := from.Format(dbtime.DateLayout)
	hi := to.Format(dbtime.DateLayout)

	// prayers terurut → binary search batas bawah
	start := sort.Search(len(prayers), func(k int) bool { return prayers[k].Date >= lo })
	out := make([]dto.Prayer, 0)
	for k := start; k < len(prayers) && prayers[k].Date <= hi; k++ {
		out = append(out, prayers[k])
	}
	return out, nil
}

func (ds *Dataset) ListProvinces(_ context.Context) ([]dto.ProvinceSummary, error) {
	out := make([]dto.ProvinceSummary, 0, len(ds.provinces))
	for _, p := range ds.provinces {
		out = append(out, p.summary)
	}
	sort.Slice(out, func(a, b int) bool {
		na, nb := strings.ToLower(out[a].Name), strings.ToLower(out[b].Name)
		if na != nb {
			return na < nb
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

func (ds *Dataset) ListCities(_ context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error) {
	pi, ok := ds.findProvince(provinceIDOrSlug)
	if !ok {
		return nil, apperr.ProvinceNotFound("ListCities", provinceIDOrSlug)
	}
	ids := ds.provinces[pi].cities
	out := make([]dto.CitySummary, 0, len(ids))
	for _, i := range ids {
		out = append(out, ds.summary(ds.cities[i]))
	}
	return out, nil
}

// Cities semua kota (tanpa prayers), terurut slug. Dipakai exporter.
func (ds *Dataset) Cities() []dto.CitySummary {
	out := make([]dto.CitySummary, 0, len(ds.cities))
	for _, row := range ds.cities {
		out = append(out, ds.summary(row))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Slug < out[b].Slug })
	return out
}

// CityData mengembalikan semua kota lengkap (untuk import ke DB lain).
func (ds *Dataset) CityData() []dto.CityData {
	out := make([]dto.CityData, 0, len(ds.cities))
	for _, s := range ds.Cities() {
		c, _ := ds.GetCity(context.Background(), s.ID)
		out = append(out, c)
	}
	return out
}

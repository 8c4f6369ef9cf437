package service

import (
	"fmt"
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/helpers/dbtime"
)

func times(imsak string) dto.PrayerTime {
	base := dbtime.MustParse(imsak)
	at := func(min int) dbtime.Tod { return dbtime.From(base.Add(time.Duration(min) * time.Minute)) }
	return dto.PrayerTime{
		Imsak:   base,
		Subuh:   at(10),
		Terbit:  at(87),
		Dhuha:   at(115),
		Dzuhur:  at(453),
		Ashar:   at(650),
		Maghrib: at(820),
		Isya:    at(892),
	}
}

var dki = dto.ProvinceSummary{ID: "prov-dki", Name: "DKI Jakarta", Slug: "dki-jakarta"}
var jabar = dto.ProvinceSummary{ID: "prov-jabar", Name: "Jawa Barat", Slug: "jawa-barat"}

func city(id, name, slug string, prov dto.ProvinceSummary, dates ...string) dto.CityData {
	c := dto.CityData{
		ID:         id,
		Name:       name,
		Slug:       slug,
		ProvinceID: prov.ID,
		Coordinate: dto.Coordinate{Latitude: -6.5, Longitude: 107},
		Province:   prov,
	}
	for i, d := range dates {
		c.Prayers = append(c.Prayers, dto.Prayer{
			ID:     fmt.Sprintf("%s-%d", id, i),
			Date:   d,
			Time:   times("04:25"),
			CityID: id,
		})
	}
	return c
}

func fixtureCities() []dto.CityData {
	return []dto.CityData{
		city("city-jkt", "Kota Jakarta", "kota-jakarta", dki, "2025-03-02", "2025-03-01", "2025-03-03"),
		city("city-bdg", "Kota Bandung", "kota-bandung", jabar, "2025-03-01", "2025-03-31", "2025-04-01"),
		city("city-bgr", "Kota Bogor", "kota-bogor", jabar),
	}
}

func fixtureDataset() *Dataset {
	ds, err := NewDataset(fixtureCities())
	if err != nil {
		panic(err)
	}
	return ds
}

package dto

import (
	"time"

	"jadwalsholat_backend/internals/features/prayers/schedules/model"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"gorm.io/datatypes"
)

// ====================
// Converter model ⇄ dto
// ====================

func FromProvinceModel(m model.ProvinceModel) ProvinceSummary {
	return ProvinceSummary{
		ID:   m.ProvinceID,
		Name: m.ProvinceName,
		Slug: m.ProvinceSlug,
	}
}

func FromPrayerModel(m model.PrayerModel) Prayer {
	return Prayer{
		ID:     m.PrayerID,
		Date:   time.Time(m.PrayerDate).Format(dbtime.DateLayout),
		CityID: m.PrayerCityID,
		Time: PrayerTime{
			Imsak:   m.PrayerImsak,
			Subuh:   m.PrayerSubuh,
			Terbit:  m.PrayerTerbit,
			Dhuha:   m.PrayerDhuha,
			Dzuhur:  m.PrayerDzuhur,
			Ashar:   m.PrayerAshar,
			Maghrib: m.PrayerMaghrib,
			Isya:    m.PrayerIsya,
		},
	}
}

// FromCityModel: province diambil dari relasi (bukan salinan kedua),
// prayers dari relasi Prayers kalau di-preload.
func FromCityModel(m model.CityModel) CityData {
	c := CityData{
		ID:         m.CityID,
		Name:       m.CityName,
		Slug:       m.CitySlug,
		ProvinceID: m.CityProvinceID,
		Coordinate: Coordinate{Latitude: m.CityLatitude, Longitude: m.CityLongitude},
		Prayers:    make([]Prayer, 0, len(m.Prayers)),
	}
	if m.Province != nil {
		c.Province = FromProvinceModel(*m.Province)
	}
	for _, p := range m.Prayers {
		c.Prayers = append(c.Prayers, FromPrayerModel(p))
	}
	return c
}

func (p ProvinceSummary) ToModel() model.ProvinceModel {
	return model.ProvinceModel{
		ProvinceID:   p.ID,
		ProvinceName: p.Name,
		ProvinceSlug: p.Slug,
	}
}

// ToModel mengandaikan p sudah lolos validasi (tanggal kanonik).
func (p Prayer) ToModel() (model.PrayerModel, error) {
	d, err := dbtime.ParseDate(p.Date)
	if err != nil {
		return model.PrayerModel{}, err
	}
	return model.PrayerModel{
		PrayerID:      p.ID,
		PrayerCityID:  p.CityID,
		PrayerDate:    datatypes.Date(d),
		PrayerImsak:   p.Time.Imsak,
		PrayerSubuh:   p.Time.Subuh,
		PrayerTerbit:  p.Time.Terbit,
		PrayerDhuha:   p.Time.Dhuha,
		PrayerDzuhur:  p.Time.Dzuhur,
		PrayerAshar:   p.Time.Ashar,
		PrayerMaghrib: p.Time.Maghrib,
		PrayerIsya:    p.Time.Isya,
	}, nil
}

// ToModel tanpa relasi; prayers dikonversi terpisah oleh importer.
func (c CityData) ToModel() model.CityModel {
	return model.CityModel{
		CityID:         c.ID,
		CityName:       c.Name,
		CitySlug:       c.Slug,
		CityProvinceID: c.ProvinceID,
		CityLatitude:   c.Coordinate.Latitude,
		CityLongitude:  c.Coordinate.Longitude,
	}
}

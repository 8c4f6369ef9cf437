package repository

import (
	"fmt"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/helpers/dbtime"
)

// Bentuk dokumen di koleksi "cities": satu dokumen per kota, prayers
// tertanam & terurut tanggal. Waktu disimpan sebagai string "HH:MM".

type mongoProvince struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
	Slug string `bson:"slug"`
}

type mongoPrayer struct {
	ID      string `bson:"id"`
	Date    string `bson:"date"`
	Imsak   string `bson:"imsak"`
	Subuh   string `bson:"subuh"`
	Terbit  string `bson:"terbit"`
	Dhuha   string `bson:"dhuha"`
	Dzuhur  string `bson:"dzuhur"`
	Ashar   string `bson:"ashar"`
	Maghrib string `bson:"maghrib"`
	Isya    string `bson:"isya"`
}

type mongoCity struct {
	ID         string        `bson:"_id"`
	Name       string        `bson:"name"`
	Slug       string        `bson:"slug"`
	ProvinceID string        `bson:"provinceId"`
	Latitude   float64       `bson:"latitude"`
	Longitude  float64       `bson:"longitude"`
	Province   mongoProvince `bson:"province"`
	Prayers    []mongoPrayer `bson:"prayers,omitempty"`
}

func toMongoPrayer(p dto.Prayer) mongoPrayer {
	t := p.Time
	return mongoPrayer{
		ID:      p.ID,
		Date:    p.Date,
		Imsak:   t.Imsak.String(),
		Subuh:   t.Subuh.String(),
		Terbit:  t.Terbit.String(),
		Dhuha:   t.Dhuha.String(),
		Dzuhur:  t.Dzuhur.String(),
		Ashar:   t.Ashar.String(),
		Maghrib: t.Maghrib.String(),
		Isya:    t.Isya.String(),
	}
}

func toMongoCity(c dto.CityData) mongoCity {
	doc := mongoCity{
		ID:         c.ID,
		Name:       c.Name,
		Slug:       c.Slug,
		ProvinceID: c.ProvinceID,
		Latitude:   c.Coordinate.Latitude,
		Longitude:  c.Coordinate.Longitude,
		Province:   mongoProvince(c.Province),
		Prayers:    make([]mongoPrayer, 0, len(c.Prayers)),
	}
	for _, p := range c.Prayers {
		doc.Prayers = append(doc.Prayers, toMongoPrayer(p))
	}
	return doc
}

func (m mongoPrayer) toDTO(cityID string) (dto.Prayer, error) {
	p := dto.Prayer{ID: m.ID, Date: m.Date, CityID: cityID}
	fields := []struct {
		dst *dbtime.Tod
		src string
	}{
		{&p.Time.Imsak, m.Imsak},
		{&p.Time.Subuh, m.Subuh},
		{&p.Time.Terbit, m.Terbit},
		{&p.Time.Dhuha, m.Dhuha},
		{&p.Time.Dzuhur, m.Dzuhur},
		{&p.Time.Ashar, m.Ashar},
		{&p.Time.Maghrib, m.Maghrib},
		{&p.Time.Isya, m.Isya},
	}
	for _, f := range fields {
		tod, err := dbtime.Parse(f.src)
		if err != nil {
			return dto.Prayer{}, fmt.Errorf("prayer %s: %w", m.ID, err)
		}
		*f.dst = tod
	}
	return p, nil
}

func (m mongoCity) summary() dto.CitySummary {
	return dto.CitySummary{
		ID:         m.ID,
		Name:       m.Name,
		Slug:       m.Slug,
		ProvinceID: m.ProvinceID,
		Coordinate: dto.Coordinate{Latitude: m.Latitude, Longitude: m.Longitude},
		Province:   dto.ProvinceSummary(m.Province),
	}
}

func (m mongoCity) toDTO() (dto.CityData, error) {
	s := m.summary()
	c := dto.CityData{
		ID:         s.ID,
		Name:       s.Name,
		Slug:       s.Slug,
		ProvinceID: s.ProvinceID,
		Coordinate: s.Coordinate,
		Province:   s.Province,
		Prayers:    make([]dto.Prayer, 0, len(m.Prayers)),
	}
	for _, mp := range m.Prayers {
		p, err := mp.toDTO(m.ID)
		if err != nil {
			return dto.CityData{}, err
		}
		c.Prayers = append(c.Prayers, p)
	}
	return c, nil
}

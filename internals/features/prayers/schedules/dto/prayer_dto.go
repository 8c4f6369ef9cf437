// file: internals/features/prayers/schedules/dto/prayer_dto.go
package dto

import (
	"jadwalsholat_backend/internals/helpers/dbtime"
)

// ====================
// Wire contract (nama field JSON wajib sama persis dengan dataset)
// ====================

// PrayerTime delapan waktu harian, format "HH:MM".
type PrayerTime struct {
	Imsak   dbtime.Tod `json:"imsak" yaml:"imsak" validate:"required,hhmm"`
	Subuh   dbtime.Tod `json:"subuh" yaml:"subuh" validate:"required,hhmm"`
	Terbit  dbtime.Tod `json:"terbit" yaml:"terbit" validate:"required,hhmm"`
	Dhuha   dbtime.Tod `json:"dhuha" yaml:"dhuha" validate:"required,hhmm"`
	Dzuhur  dbtime.Tod `json:"dzuhur" yaml:"dzuhur" validate:"required,hhmm"`
	Ashar   dbtime.Tod `json:"ashar" yaml:"ashar" validate:"required,hhmm"`
	Maghrib dbtime.Tod `json:"maghrib" yaml:"maghrib" validate:"required,hhmm"`
	Isya    dbtime.Tod `json:"isya" yaml:"isya" validate:"required,hhmm"`
}

// Prayer satu jadwal bertanggal untuk satu kota.
type Prayer struct {
	ID     string     `json:"id" yaml:"id" validate:"required,max=128"`
	Date   string     `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Time   PrayerTime `json:"time" yaml:"time"`
	CityID string     `json:"cityId" yaml:"cityId" validate:"required,max=128"`
}

// PrayerName nama event harian, urut kronologis.
type PrayerName string

const (
	PrayerImsak   PrayerName = "imsak"
	PrayerSubuh   PrayerName = "subuh"
	PrayerTerbit  PrayerName = "terbit"
	PrayerDhuha   PrayerName = "dhuha"
	PrayerDzuhur  PrayerName = "dzuhur"
	PrayerAshar   PrayerName = "ashar"
	PrayerMaghrib PrayerName = "maghrib"
	PrayerIsya    PrayerName = "isya"
)

// PrayerOrder urutan kronologis dalam sehari.
var PrayerOrder = []PrayerName{
	PrayerImsak, PrayerSubuh, PrayerTerbit, PrayerDhuha,
	PrayerDzuhur, PrayerAshar, PrayerMaghrib, PrayerIsya,
}

// Get mengambil waktu berdasarkan nama; ok=false kalau nama tidak dikenal.
func (pt PrayerTime) Get(name PrayerName) (dbtime.Tod, bool) {
	switch name {
	case PrayerImsak:
		return pt.Imsak, true
	case PrayerSubuh:
		return pt.Subuh, true
	case PrayerTerbit:
		return pt.Terbit, true
	case PrayerDhuha:
		return pt.Dhuha, true
	case PrayerDzuhur:
		return pt.Dzuhur, true
	case PrayerAshar:
		return pt.Ashar, true
	case PrayerMaghrib:
		return pt.Maghrib, true
	case PrayerIsya:
		return pt.Isya, true
	}
	return dbtime.Tod{}, false
}

// NextPrayer hasil lookup "waktu sholat berikutnya".
type NextPrayer struct {
	CityID string     `json:"cityId"`
	Name   PrayerName `json:"name"`
	Date   string     `json:"date"`
	Time   dbtime.Tod `json:"time"`
	At     string     `json:"at"` // RFC3339 di zona kota
}

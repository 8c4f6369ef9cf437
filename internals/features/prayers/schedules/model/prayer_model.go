package model

import (
	"time"

	"jadwalsholat_backend/internals/helpers/dbtime"

	"gorm.io/datatypes"
)

// PrayerModel satu jadwal harian untuk satu kota.
// (prayer_city_id, prayer_date) unik: satu kota maksimal satu jadwal per tanggal.
type PrayerModel struct {
	PrayerID     string         `gorm:"column:prayer_id;type:varchar(64);primaryKey" json:"prayer_id"`
	PrayerCityID string         `gorm:"column:prayer_city_id;type:varchar(64);not null;uniqueIndex:uq_prayers_city_date,priority:1" json:"prayer_city_id"`
	PrayerDate   datatypes.Date `gorm:"column:prayer_date;type:date;not null;uniqueIndex:uq_prayers_city_date,priority:2" json:"prayer_date"`

	PrayerImsak   dbtime.Tod `gorm:"column:prayer_imsak;type:time;not null" json:"prayer_imsak"`
	PrayerSubuh   dbtime.Tod `gorm:"column:prayer_subuh;type:time;not null" json:"prayer_subuh"`
	PrayerTerbit  dbtime.Tod `gorm:"column:prayer_terbit;type:time;not null" json:"prayer_terbit"`
	PrayerDhuha   dbtime.Tod `gorm:"column:prayer_dhuha;type:time;not null" json:"prayer_dhuha"`
	PrayerDzuhur  dbtime.Tod `gorm:"column:prayer_dzuhur;type:time;not null" json:"prayer_dzuhur"`
	PrayerAshar   dbtime.Tod `gorm:"column:prayer_ashar;type:time;not null" json:"prayer_ashar"`
	PrayerMaghrib dbtime.Tod `gorm:"column:prayer_maghrib;type:time;not null" json:"prayer_maghrib"`
	PrayerIsya    dbtime.Tod `gorm:"column:prayer_isya;type:time;not null" json:"prayer_isya"`

	PrayerCreatedAt time.Time `gorm:"column:prayer_created_at;autoCreateTime" json:"prayer_created_at"`
	PrayerUpdatedAt time.Time `gorm:"column:prayer_updated_at;autoUpdateTime" json:"prayer_updated_at"`
}

func (PrayerModel) TableName() string {
	return "prayers"
}

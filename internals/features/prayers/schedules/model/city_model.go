package model

import "time"

type CityModel struct {
	CityID         string    `gorm:"column:city_id;type:varchar(64);primaryKey" json:"city_id"`
	CityName       string    `gorm:"column:city_name;type:varchar(120);not null" json:"city_name"`
	CitySlug       string    `gorm:"column:city_slug;type:varchar(120);uniqueIndex;not null" json:"city_slug"`
	CityProvinceID string    `gorm:"column:city_province_id;type:varchar(64);index;not null" json:"city_province_id"`
	CityLatitude   float64   `gorm:"column:city_latitude;type:decimal(9,6);not null" json:"city_latitude"`
	CityLongitude  float64   `gorm:"column:city_longitude;type:decimal(9,6);not null" json:"city_longitude"`
	CityCreatedAt  time.Time `gorm:"column:city_created_at;autoCreateTime" json:"city_created_at"`
	CityUpdatedAt  time.Time `gorm:"column:city_updated_at;autoUpdateTime" json:"city_updated_at"`

	// Relations
	Province *ProvinceModel `gorm:"foreignKey:CityProvinceID;references:ProvinceID" json:"province,omitempty"`
	Prayers  []PrayerModel  `gorm:"foreignKey:PrayerCityID;references:CityID" json:"prayers,omitempty"`
}

func (CityModel) TableName() string {
	return "cities"
}

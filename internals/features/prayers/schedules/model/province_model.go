package model

import "time"

type ProvinceModel struct {
	ProvinceID        string    `gorm:"column:province_id;type:varchar(64);primaryKey" json:"province_id"`
	ProvinceName      string    `gorm:"column:province_name;type:varchar(120);not null" json:"province_name"`
	ProvinceSlug      string    `gorm:"column:province_slug;type:varchar(120);uniqueIndex;not null" json:"province_slug"`
	ProvinceCreatedAt time.Time `gorm:"column:province_created_at;autoCreateTime" json:"province_created_at"`
	ProvinceUpdatedAt time.Time `gorm:"column:province_updated_at;autoUpdateTime" json:"province_updated_at"`

	// Relations
	Cities []CityModel `gorm:"foreignKey:CityProvinceID;references:ProvinceID" json:"-"`
}

func (ProvinceModel) TableName() string {
	return "provinces"
}

package dto

// Coordinate posisi geografis kota.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
}

// ProvinceSummary ringkasan provinsi yang ikut tertanam di CityData.
type ProvinceSummary struct {
	ID   string `json:"id" yaml:"id" validate:"required,max=128"`
	Name string `json:"name" yaml:"name" validate:"required,max=120"`
	Slug string `json:"slug" yaml:"slug" validate:"required,max=120,slug"`
}

// CityData kota beserta seluruh jadwal yang diketahui.
type CityData struct {
	ID         string          `json:"id" yaml:"id" validate:"required,max=128"`
	Name       string          `json:"name" yaml:"name" validate:"required,max=120"`
	Slug       string          `json:"slug" yaml:"slug" validate:"required,max=120,slug"`
	ProvinceID string          `json:"provinceId" yaml:"provinceId" validate:"required,max=128"`
	Coordinate Coordinate      `json:"coordinate" yaml:"coordinate"`
	Province   ProvinceSummary `json:"province" yaml:"province"`
	Prayers    []Prayer        `json:"prayers" yaml:"prayers"`
}

// CitySummary CityData tanpa prayers, untuk list.
type CitySummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Slug       string          `json:"slug"`
	ProvinceID string          `json:"provinceId"`
	Coordinate Coordinate      `json:"coordinate"`
	Province   ProvinceSummary `json:"province"`
}

func (c CityData) Summary() CitySummary {
	return CitySummary{
		ID:         c.ID,
		Name:       c.Name,
		Slug:       c.Slug,
		ProvinceID: c.ProvinceID,
		Coordinate: c.Coordinate,
		Province:   c.Province,
	}
}

// Document bentuk file dataset: array CityData atau {"data": [...]}.
type Document struct {
	Data []CityData `json:"data" yaml:"data"`
}

package dto

import (
	"testing"

	"jadwalsholat_backend/internals/features/prayers/schedules/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityModelRoundTrip(t *testing.T) {
	c := sampleCity()

	m := c.ToModel()
	prov := c.Province.ToModel()
	m.Province = &prov
	for _, p := range c.Prayers {
		pm, err := p.ToModel()
		require.NoError(t, err)
		m.Prayers = append(m.Prayers, pm)
	}

	assert.Equal(t, c, FromCityModel(m))
}

func TestFromCityModelWithoutRelations(t *testing.T) {
	got := FromCityModel(model.CityModel{CityID: "c", CityProvinceID: "p"})
	assert.Empty(t, got.Province.ID)
	assert.NotNil(t, got.Prayers)
	assert.Len(t, got.Prayers, 0)
}

func TestPrayerToModelRejectsBadDate(t *testing.T) {
	p := sampleCity().Prayers[0]
	p.Date = "1 Maret"
	_, err := p.ToModel()
	assert.Error(t, err)
}

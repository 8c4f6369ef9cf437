package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kota Bandung", "kota-bandung"},
		{"  Kab. Aceh   Besar ", "kab-aceh-besar"},
		{"Daerah Istimewa Yogyakarta", "daerah-istimewa-yogyakarta"},
		{"Bénoa", "benoa"},
		{"Kep. Bangka--Belitung", "kep-bangka-belitung"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in, 0), tt.in)
	}
	assert.Equal(t, "kota", Slugify("Kota Bandung", 5))
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("kota-bandung"))
	assert.True(t, IsSlug("jakarta"))
	assert.False(t, IsSlug("Kota-Bandung"))
	assert.False(t, IsSlug("-bandung"))
	assert.False(t, IsSlug("kota--bandung"))
	assert.False(t, IsSlug(""))
}

func TestLookupKey(t *testing.T) {
	key, slug := LookupKey("  Kota-Bandung ")
	assert.Equal(t, "Kota-Bandung", key)
	assert.Equal(t, "kota-bandung", slug)
}

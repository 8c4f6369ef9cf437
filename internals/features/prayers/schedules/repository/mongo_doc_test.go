package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDocumentRoundTrip(t *testing.T) {
	cities, err := DecodeCities([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	src := cities[0]

	raw, err := bson.Marshal(toMongoCity(src))
	require.NoError(t, err)

	var doc mongoCity
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "city-jkt", doc.ID)
	assert.Equal(t, "04:25", doc.Prayers[0].Imsak)

	back, err := doc.toDTO()
	require.NoError(t, err)
	assert.Equal(t, src, back)
	assert.Equal(t, src.Summary(), doc.summary())
}

func TestMongoDocumentCorruptTime(t *testing.T) {
	doc := toMongoCity(mustCity(t))
	doc.Prayers[0].Ashar = "sore"
	_, err := doc.toDTO()
	assert.Error(t, err)
}

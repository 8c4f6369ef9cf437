package dbtime

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTod(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"04:35", "04:35", false},
		{" 18:02 ", "18:02", false},
		{"00:00", "00:00", false},
		{"23:59:30", "23:59", false},
		{"12:00:00", "12:00", false},
		{"24:00", "", true},
		{"4:35", "", true},
		{"04.35", "", true},
		{"", "", true},
		{"sebelum subuh", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestTodDropsSeconds(t *testing.T) {
	a := MustParse("04:35:59")
	assert.Equal(t, MustParse("04:35"), a)
	assert.Equal(t, "04:35", a.String())

	out, err := sonic.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"04:35"`, string(out))

	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, "04:35:00", v)

	var scanned Tod
	require.NoError(t, scanned.Scan(time.Date(2025, 3, 1, 17, 59, 42, 0, time.UTC)))
	assert.Equal(t, "17:59", scanned.String())
}

func TestTodMidnightIsNotZero(t *testing.T) {
	assert.False(t, MustParse("00:00").IsZero())
	assert.True(t, Tod{}.IsZero())
}

func TestTodJSON(t *testing.T) {
	type wrapper struct {
		Subuh Tod `json:"subuh"`
		Isya  Tod `json:"isya"`
	}
	var w wrapper
	require.NoError(t, sonic.Unmarshal([]byte(`{"subuh":"04:35","isya":""}`), &w))
	assert.Equal(t, 4*60+35, w.Subuh.Minutes())
	assert.True(t, w.Isya.IsZero())

	out, err := sonic.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"subuh":"04:35","isya":""}`, string(out))

	assert.Error(t, sonic.Unmarshal([]byte(`{"subuh":"25:00"}`), &w))
}

func TestTodScanValue(t *testing.T) {
	var tod Tod
	require.NoError(t, tod.Scan("11:58:00"))
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "11:58:00", v)

	require.NoError(t, tod.Scan(time.Date(2025, 3, 1, 17, 59, 0, 0, time.UTC)))
	assert.Equal(t, "17:59", tod.String())

	require.NoError(t, tod.Scan(nil))
	v, err = tod.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, tod.Scan(42))
}

func TestTodOn(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	got := MustParse("18:05").On(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 5, 0, 0, loc), got)
}

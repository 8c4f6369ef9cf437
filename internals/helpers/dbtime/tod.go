// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Tod = time-of-day presisi menit tanpa tanggal & zona. Input boleh
// "HH:MM:SS", detiknya dibuang; output selalu "HH:MM".
// Zero value berarti "belum diisi"; 00:00 tetap valid (bukan zero).
type Tod struct{ time.Time }

const (
	todLayout     = "15:04"
	todLayoutSecs = "15:04:05"
)

// From: ambil HH:mm dari time.Time, buang detik, tanggal & zona
func From(t time.Time) Tod {
	return Tod{Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)}
}

// Parse: "HH:MM" atau "HH:MM:SS" (detik dibuang), jam 00-23
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// MustParse hanya untuk fixture/test.
func MustParse(s string) Tod {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	layout := todLayoutSecs
	switch len(s) {
	case 5:
		layout = todLayout
	case 8:
	default:
		return fmt.Errorf("tod: invalid time of day %q (want HH:MM)", s)
	}
	tt, err := time.Parse(layout, s)
	if err != nil {
		return fmt.Errorf("tod: invalid time of day %q: %w", s, err)
	}
	*t = From(tt)
	return nil
}

// Minutes sejak tengah malam, dipakai untuk cek urutan kronologis.
func (t Tod) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

func (t Tod) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(todLayout)
}

// On menempelkan jam ini ke tanggal d di lokasi loc.
func (t Tod) On(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, t.Hour(), t.Minute(), 0, 0, loc)
}

// Scan: terima time.Time atau string ("HH:MM[:SS]") dari kolom TIME
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

// Value: kirim "HH:MM:SS" agar Postgres TIME paham
func (t Tod) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(todLayoutSecs), nil
}

// JSON: "HH:MM" (kompatibel dengan dataset lama); string kosong → zero
func (t Tod) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(t.String())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := sonic.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tod: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(s)
}

// YAML (yaml.v3 memanggil UnmarshalText untuk scalar)
func (t Tod) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tod) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == "" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(string(b))
}

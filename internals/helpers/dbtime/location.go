package dbtime

import (
	"strings"
	"time"
	_ "time/tzdata" // image minimal sering tanpa /usr/share/zoneinfo
)

// DefaultTimezone dipakai kalau TIMEZONE kosong / tidak valid.
const DefaultTimezone = "Asia/Jakarta"

// LoadLocation:
// 1) nama zona dari config
// 2) fallback Asia/Jakarta
// 3) fallback terakhir UTC
func LoadLocation(name string) *time.Location {
	if s := strings.TrimSpace(name); s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

const (
	ZoneWIB  = "Asia/Jakarta"
	ZoneWITA = "Asia/Makassar"
	ZoneWIT  = "Asia/Jayapura"
)

// zona per provinsi (nama lower-case, spasi tunggal)
var provinceZones = map[string]string{
	"aceh": ZoneWIB, "sumatera utara": ZoneWIB, "sumatera barat": ZoneWIB,
	"riau": ZoneWIB, "kepulauan riau": ZoneWIB, "jambi": ZoneWIB,
	"sumatera selatan": ZoneWIB, "kepulauan bangka belitung": ZoneWIB, "bangka belitung": ZoneWIB,
	"bengkulu": ZoneWIB, "lampung": ZoneWIB, "dki jakarta": ZoneWIB, "jakarta": ZoneWIB,
	"jawa barat": ZoneWIB, "banten": ZoneWIB, "jawa tengah": ZoneWIB,
	"di yogyakarta": ZoneWIB, "daerah istimewa yogyakarta": ZoneWIB, "jawa timur": ZoneWIB,
	"kalimantan barat": ZoneWIB, "kalimantan tengah": ZoneWIB,

	"bali": ZoneWITA, "nusa tenggara barat": ZoneWITA, "ntb": ZoneWITA,
	"nusa tenggara timur": ZoneWITA, "ntt": ZoneWITA,
	"kalimantan selatan": ZoneWITA, "kalimantan timur": ZoneWITA, "kalimantan utara": ZoneWITA,
	"sulawesi utara": ZoneWITA, "sulawesi tengah": ZoneWITA, "sulawesi barat": ZoneWITA,
	"sulawesi selatan": ZoneWITA, "sulawesi tenggara": ZoneWITA, "gorontalo": ZoneWITA,

	"maluku": ZoneWIT, "maluku utara": ZoneWIT, "papua": ZoneWIT,
	"papua barat": ZoneWIT, "papua barat daya": ZoneWIT, "papua selatan": ZoneWIT,
	"papua tengah": ZoneWIT, "papua pegunungan": ZoneWIT,
}

// ZoneFor zona lokal sebuah kota:
// 1) nama provinsi dikenal → WIB / WITA / WIT
// 2) koordinat di dalam wilayah Indonesia → pita bujur
// 3) selain itu fallback (zona dari config)
func ZoneFor(province string, lat, lon float64, fallback *time.Location) *time.Location {
	name := strings.Join(strings.Fields(strings.ToLower(province)), " ")
	name = strings.TrimPrefix(name, "provinsi ")
	if zone, ok := provinceZones[name]; ok {
		return LoadLocation(zone)
	}

	if lat >= -11.5 && lat <= 6.5 && lon >= 94.5 && lon <= 141.5 {
		switch {
		case lon >= 127:
			return LoadLocation(ZoneWIT)
		case lon >= 114.5:
			return LoadLocation(ZoneWITA)
		default:
			return LoadLocation(ZoneWIB)
		}
	}
	if fallback != nil {
		return fallback
	}
	return LoadLocation(DefaultTimezone)
}

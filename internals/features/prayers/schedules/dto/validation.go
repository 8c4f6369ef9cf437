package dto

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	helper "jadwalsholat_backend/internals/helpers"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator instance tunggal (validator.New() mahal, cache struct info).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		// pakai nama field JSON di path error
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Tod divalidasi sebagai string "HH:MM"
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if t, ok := field.Interface().(dbtime.Tod); ok {
				return t.String()
			}
			return nil
		}, dbtime.Tod{})

		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := dbtime.Parse(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return helper.IsSlug(fl.Field().String())
		})

		validate = v
	})
	return validate
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "hhmm":
		return fmt.Sprintf("invalid time of day %q (want HH:MM)", fe.Value())
	case "slug":
		return fmt.Sprintf("invalid slug %q (want [a-z0-9-])", fe.Value())
	case "datetime":
		return fmt.Sprintf("invalid calendar date %q (want %s)", fe.Value(), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("out of range (%s %s)", fe.Tag(), fe.Param())
	case "max":
		return fmt.Sprintf("too long (max %s)", fe.Param())
	default:
		return "failed " + fe.Tag()
	}
}

// structIssues menerjemahkan validator.ValidationErrors ke Issue dengan
// path JSON relatif (nama struct root dibuang).
func structIssues(s any) *apperr.ValidationError {
	out := &apperr.ValidationError{}
	err := Validator().Struct(s)
	if err == nil {
		return out
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		out.Add("", "%v", err)
		return out
	}
	for _, fe := range ves {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		out.Add(ns, "%s", tagMessage(fe))
	}
	return out
}

// ====================
// Invariants
// ====================

// ValidatePrayerTime: delapan field terisi, format valid, urut kronologis
// imsak ≤ subuh ≤ terbit ≤ dhuha ≤ dzuhur ≤ ashar ≤ maghrib ≤ isya.
func ValidatePrayerTime(pt PrayerTime) *apperr.ValidationError {
	ve := structIssues(pt)
	if len(ve.Issues) > 0 {
		return ve
	}
	prevName := PrayerOrder[0]
	prev, _ := pt.Get(prevName)
	for _, name := range PrayerOrder[1:] {
		cur, _ := pt.Get(name)
		if cur.Minutes() < prev.Minutes() {
			ve.Add(string(name), "%s (%s) is before %s (%s)", name, cur, prevName, prev)
		}
		prevName, prev = name, cur
	}
	return ve
}

// ValidatePrayer validasi satu jadwal (tanpa cek kepemilikan kota).
func ValidatePrayer(p Prayer) *apperr.ValidationError {
	ve := structIssues(p)
	// cek urutan hanya kalau format waktunya sudah lolos
	for _, is := range ve.Issues {
		if strings.HasPrefix(is.Path, "time.") {
			return ve
		}
	}
	ve.Merge("time", ValidatePrayerTime(p.Time))
	return ve
}

// ValidateCityData cek struktur + invariant satu kota:
// province.id == provinceId, setiap prayers[i].cityId == id, tanggal unik.
func ValidateCityData(c CityData) *apperr.ValidationError {
	ve := structIssues(c)

	if c.Province.ID != "" && c.Province.ID != c.ProvinceID {
		ve.Add("province.id", "province.id %q does not match provinceId %q", c.Province.ID, c.ProvinceID)
	}

	seen := make(map[string]int, len(c.Prayers))
	for i, p := range c.Prayers {
		prefix := fmt.Sprintf("prayers[%d]", i)
		ve.Merge(prefix, ValidatePrayer(p))
		if p.CityID != c.ID {
			ve.Add(prefix+".cityId", "cityId %q does not match city id %q", p.CityID, c.ID)
		}
		if j, dup := seen[p.Date]; dup {
			ve.Add(prefix+".date", "duplicate date %s (also prayers[%d])", p.Date, j)
			continue
		}
		seen[p.Date] = i
	}
	return ve
}

// NormalizeCityData: tanggal ke "YYYY-MM-DD", slug lower-case (atau dari nama), prayers
// diurutkan per tanggal. Tanggal yang tidak bisa diparse dibiarkan supaya
// validasi melaporkannya.
func NormalizeCityData(c CityData) CityData {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.ToLower(strings.TrimSpace(c.Slug))
	c.ProvinceID = strings.TrimSpace(c.ProvinceID)
	c.Province.ID = strings.TrimSpace(c.Province.ID)
	c.Province.Name = strings.TrimSpace(c.Province.Name)
	c.Province.Slug = strings.ToLower(strings.TrimSpace(c.Province.Slug))
	// slug kosong diturunkan dari nama
	if c.Slug == "" {
		c.Slug = helper.Slugify(c.Name, 120)
	}
	if c.Province.Slug == "" {
		c.Province.Slug = helper.Slugify(c.Province.Name, 120)
	}

	prayers := make([]Prayer, len(c.Prayers))
	for i, p := range c.Prayers {
		p.ID = strings.TrimSpace(p.ID)
		p.CityID = strings.TrimSpace(p.CityID)
		if d, err := dbtime.NormalizeDate(p.Date); err == nil {
			p.Date = d
		}
		prayers[i] = p
	}
	sort.SliceStable(prayers, func(i, j int) bool { return prayers[i].Date < prayers[j].Date })
	c.Prayers = prayers
	return c
}

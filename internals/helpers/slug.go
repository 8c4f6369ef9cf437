package helper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
	reSlug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify mengubah teks bebas jadi slug [a-z0-9-], hilangkan diakritik,
// kompres "-", trim ujung, enforce maxLen (default 100 jika <=0).
// Hasil bisa kosong kalau input tidak punya huruf/angka sama sekali.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	// Strip diakritik (é → e, dll)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = strings.Trim(string(rs[:maxLen]), "-")
	}
	return s
}

// IsSlug true kalau s sudah berbentuk slug kanonik.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// LookupKey menormalkan input pencarian kota/provinsi: spasi di ujung dibuang,
// huruf besar diturunkan ("Kota-Bandung" → "kota-bandung"). ID tidak diubah
// bentuknya selain trim, jadi pencarian ID tetap exact.
func LookupKey(s string) (key string, slugForm string) {
	key = strings.TrimSpace(s)
	return key, strings.ToLower(key)
}

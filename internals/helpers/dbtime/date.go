package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout format tanggal kalender di dataset & URL.
const DateLayout = "2006-01-02"

// MonthLayout format periode bulanan (YYYY-MM).
const MonthLayout = "2006-01"

// ParseDate menerima "YYYY-MM-DD" atau timestamp RFC3339 (diambil bagian
// tanggalnya saja). Tanggal yang tidak ada di kalender (2025-02-30) ditolak.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date: empty")
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: invalid calendar date %q (want YYYY-MM-DD)", s)
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// NormalizeDate mengembalikan bentuk kanonik "YYYY-MM-DD".
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// ParseMonth: "YYYY-MM" → hari pertama & terakhir bulan itu.
func ParseMonth(s string) (first, last time.Time, err error) {
	m, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("month: invalid period %q (want YYYY-MM)", s)
	}
	first = m
	last = m.AddDate(0, 1, -1)
	return first, last, nil
}

// DateOnly memotong jam & zona, tetap di tanggal lokal t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"jadwalsholat_backend/internals/features/prayers/schedules/dto"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/helpers/dbtime"

	"go.uber.org/zap"
)

const (
	maxIdentifierLen = 128
	maxRangeDays     = 366
)

// PrayerService lapisan lookup di atas Repository: validasi input,
// parsing tanggal, klasifikasi error. Tidak punya state yang berubah.
type PrayerService struct {
	repo Repository
	log  *zap.Logger
	loc  *time.Location
}

type Option func(*PrayerService)

func WithLogger(l *zap.Logger) Option {
	return func(s *PrayerService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLocation zona fallback NextPrayer untuk kota yang zonanya tidak
// bisa ditentukan dari provinsi / koordinat (default Asia/Jakarta).
func WithLocation(loc *time.Location) Option {
	return func(s *PrayerService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewPrayerService(repo Repository, opts ...Option) *PrayerService {
	s := &PrayerService{
		repo: repo,
		log:  zap.NewNop(),
		loc:  dbtime.LoadLocation(dbtime.DefaultTimezone),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// checkIdentifier: id / slug tidak boleh kosong, terlalu panjang, atau
// mengandung "/" & whitespace (tidak akan pernah cocok dengan data).
func checkIdentifier(op, what, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperr.InvalidInput(op, "%s is required", what)
	}
	if len(v) > maxIdentifierLen {
		return "", apperr.InvalidInput(op, "%s too long (max %d)", what, maxIdentifierLen)
	}
	if strings.ContainsRune(v, '/') || strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return "", apperr.InvalidInput(op, "%s %q contains illegal characters", what, v)
	}
	return v, nil
}

func parseDate(op, s string) (time.Time, error) {
	d, err := dbtime.ParseDate(s)
	if err != nil {
		return time.Time{}, apperr.InvalidInput(op, "%v", err)
	}
	return d, nil
}

func (s *PrayerService) logErr(op string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	fields = append(fields, zap.String("op", op), zap.String("kind", string(apperr.KindOf(err))), zap.Error(err))
	switch apperr.KindOf(err) {
	case apperr.KindUpstreamUnavailable, apperr.KindInternal:
		s.log.Warn("lookup failed", fields...)
	default:
		s.log.Debug("lookup miss", fields...)
	}
}

// =======================
// Kontrak utama
// =======================

func (s *PrayerService) GetCity(ctx context.Context, idOrSlug string) (dto.CityData, error) {
	const op = "GetCity"
	key, err := checkIdentifier(op, "city", idOrSlug)
	if err != nil {
		return dto.CityData{}, err
	}
	c, err := s.repo.GetCity(ctx, key)
	s.logErr(op, err, zap.String("city", key))
	return c, err
}

func (s *PrayerService) GetPrayerForDate(ctx context.Context, cityIDOrSlug, date string) (dto.Prayer, error) {
	const op = "GetPrayerForDate"
	key, err := checkIdentifier(op, "city", cityIDOrSlug)
	if err != nil {
		return dto.Prayer{}, err
	}
	d, err := parseDate(op, date)
	if err != nil {
		return dto.Prayer{}, err
	}
	p, err := s.repo.GetPrayerForDate(ctx, key, d)
	s.logErr(op, err, zap.String("city", key), zap.String("date", date))
	return p, err
}

func (s *PrayerService) ListProvinces(ctx context.Context) ([]dto.ProvinceSummary, error) {
	out, err := s.repo.ListProvinces(ctx)
	s.logErr("ListProvinces", err)
	return out, err
}

// =======================
// Lookup tambahan
// =======================

func (s *PrayerService) ListCities(ctx context.Context, provinceIDOrSlug string) ([]dto.CitySummary, error) {
	const op = "ListCities"
	key, err := checkIdentifier(op, "province", provinceIDOrSlug)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListCities(ctx, key)
	s.logErr(op, err, zap.String("province", key))
	return out, err
}

// GetPrayersInRange [from, to] inklusif, maksimal 366 hari.
func (s *PrayerService) GetPrayersInRange(ctx context.Context, cityIDOrSlug, from, to string) ([]dto.Prayer, error) {
	const op = "GetPrayersInRange"
	key, err := checkIdentifier(op, "city", cityIDOrSlug)
	if err != nil {
		return nil, err
	}
	f, err := parseDate(op, from)
	if err != nil {
		return nil, err
	}
	t, err := parseDate(op, to)
	if err != nil {
		return nil, err
	}
	return s.rangeDates(ctx, op, key, f, t)
}

// GetPrayersForMonth period "YYYY-MM".
func (s *PrayerService) GetPrayersForMonth(ctx context.Context, cityIDOrSlug, period string) ([]dto.Prayer, error) {
	const op = "GetPrayersForMonth"
	key, err := checkIdentifier(op, "city", cityIDOrSlug)
	if err != nil {
		return nil, err
	}
	first, last, err := dbtime.ParseMonth(period)
	if err != nil {
		return nil, apperr.InvalidInput(op, "%v", err)
	}
	return s.rangeDates(ctx, op, key, first, last)
}

func (s *PrayerService) rangeDates(ctx context.Context, op, city string, from, to time.Time) ([]dto.Prayer, error) {
	if to.Before(from) {
		return nil, apperr.InvalidInput(op, "from %s is after to %s",
			from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout))
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxRangeDays {
		return nil, apperr.InvalidInput(op, "range of %d days exceeds %d", days, maxRangeDays)
	}
	out, err := s.repo.GetPrayersInRange(ctx, city, from, to)
	s.logErr(op, err, zap.String("city", city))
	return out, err
}

// NextPrayer waktu berikutnya yang jatuh setelah at, dihitung di zona
// lokal kota (WIB/WITA/WIT).
// Kalau isya hari ini sudah lewat, ambil imsak besok.
func (s *PrayerService) NextPrayer(ctx context.Context, cityIDOrSlug string, at time.Time) (dto.NextPrayer, error) {
	const op = "NextPrayer"
	key, err := checkIdentifier(op, "city", cityIDOrSlug)
	if err != nil {
		return dto.NextPrayer{}, err
	}
	city, err := s.repo.GetCity(ctx, key)
	if err != nil {
		s.logErr(op, err, zap.String("city", key))
		return dto.NextPrayer{}, err
	}
	loc := s.cityZone(city.Summary())
	local := at.In(loc)
	today := dbtime.DateOnly(local)

	p, err := s.repo.GetPrayerForDate(ctx, key, today)
	if err != nil {
		s.logErr(op, err, zap.String("city", key))
		return dto.NextPrayer{}, err
	}

	for _, name := range dto.PrayerOrder {
		tod, _ := p.Time.Get(name)
		when := tod.On(today, loc)
		if when.After(local) {
			return s.next(p, name, tod, when), nil
		}
	}

	tomorrow := today.AddDate(0, 0, 1)
	np, err := s.repo.GetPrayerForDate(ctx, key, tomorrow)
	if err != nil {
		s.logErr(op, err, zap.String("city", key))
		return dto.NextPrayer{}, err
	}
	first := dto.PrayerOrder[0]
	tod, _ := np.Time.Get(first)
	return s.next(np, first, tod, tod.On(tomorrow, loc)), nil
}

// cityZone WIB/WITA/WIT dari provinsi atau koordinat kota; s.loc kalau tidak ketemu.
func (s *PrayerService) cityZone(c dto.CitySummary) *time.Location {
	return dbtime.ZoneFor(c.Province.Name, c.Coordinate.Latitude, c.Coordinate.Longitude, s.loc)
}

func (s *PrayerService) next(p dto.Prayer, name dto.PrayerName, tod dbtime.Tod, when time.Time) dto.NextPrayer {
	return dto.NextPrayer{
		CityID: p.CityID,
		Name:   name,
		Date:   p.Date,
		Time:   tod,
		At:     when.Format(time.RFC3339),
	}
}

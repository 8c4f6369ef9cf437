// file: internals/helpers/apperr/apperr.go
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// =======================
// Sentinel (taksonomi dasar)
// =======================
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// NotFound yang lebih spesifik, tetap errors.Is(err, ErrNotFound) == true
	ErrCityNotFound     = fmt.Errorf("city %w", ErrNotFound)
	ErrScheduleNotFound = fmt.Errorf("schedule %w", ErrNotFound)
	ErrProvinceNotFound = fmt.Errorf("province %w", ErrNotFound)
)

type Kind string

const (
	KindCityNotFound        Kind = "city_not_found"
	KindScheduleNotFound    Kind = "schedule_not_found"
	KindProvinceNotFound    Kind = "province_not_found"
	KindNotFound            Kind = "not_found"
	KindInvalidInput        Kind = "invalid_input"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindInternal            Kind = "internal"
)

// Error membawa konteks operasi di atas salah satu sentinel.
type Error struct {
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	out := e.Op
	if e.Msg != "" {
		if out != "" {
			out += ": "
		}
		out += e.Msg
	}
	if e.Err != nil {
		if out != "" {
			out += ": "
		}
		out += e.Err.Error()
	}
	return out
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrap(op string, sentinel error, format string, args ...any) error {
	return &Error{Op: op, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

func CityNotFound(op, idOrSlug string) error {
	return wrap(op, ErrCityNotFound, "%q", idOrSlug)
}

func ScheduleNotFound(op, cityID, date string) error {
	return wrap(op, ErrScheduleNotFound, "city=%s date=%s", cityID, date)
}

func ProvinceNotFound(op, idOrSlug string) error {
	return wrap(op, ErrProvinceNotFound, "%q", idOrSlug)
}

func InvalidInput(op, format string, args ...any) error {
	return wrap(op, ErrInvalidInput, format, args...)
}

// Upstream membungkus error transport/driver sebagai UpstreamUnavailable.
// Error yang sudah terklasifikasi (dan context.Canceled dari pemanggil)
// dikembalikan apa adanya.
func Upstream(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if KindOf(cause) != KindInternal || errors.Is(cause, context.Canceled) {
		return cause
	}
	return &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrUpstreamUnavailable, cause)}
}

// KindOf mengklasifikasikan error tanpa perlu tahu backend asalnya.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCityNotFound):
		return KindCityNotFound
	case errors.Is(err, ErrScheduleNotFound):
		return KindScheduleNotFound
	case errors.Is(err, ErrProvinceNotFound):
		return KindProvinceNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUpstreamUnavailable):
		return KindUpstreamUnavailable
	default:
		return KindInternal
	}
}

func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsInvalidInput(err error) bool        { return errors.Is(err, ErrInvalidInput) }
func IsUpstreamUnavailable(err error) bool { return errors.Is(err, ErrUpstreamUnavailable) }

// HTTPStatus: NotFound → 404, InvalidInput → 400, Upstream → 503, sisanya 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindCityNotFound, KindScheduleNotFound, KindProvinceNotFound, KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code dipakai sebagai error_code di response JSON.
func Code(err error) string {
	switch KindOf(err) {
	case KindCityNotFound:
		return "CITY_NOT_FOUND"
	case KindScheduleNotFound:
		return "SCHEDULE_NOT_FOUND"
	case KindProvinceNotFound:
		return "PROVINCE_NOT_FOUND"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidInput:
		return "BAD_REQUEST"
	case KindUpstreamUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"strings"

	"jadwalsholat_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	ErrorCode string         `json:"error_code,omitempty"`
	Errors    []apperr.Issue `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusServiceUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	return jsonErrorWithCode(c, status, message, statusToErrorCode(status))
}

func jsonErrorWithCode(c *fiber.Ctx, status int, message, code string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: code,
	})
}

// JsonValidationError: khusus error validasi dataset / input
func JsonValidationError(c *fiber.Ctx, ve *apperr.ValidationError) error {
	resp := ErrorResponse{
		Success:   false,
		Message:   "validation failed",
		ErrorCode: "BAD_REQUEST",
	}
	if ve != nil {
		resp.Errors = ve.Issues
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

// JsonFromError memetakan error domain (apperr) / *fiber.Error ke response JSON.
func JsonFromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve)
	}

	status := apperr.HTTPStatus(err)
	msg := messageFor(apperr.KindOf(err))
	return jsonErrorWithCode(c, status, msg, apperr.Code(err))
}

func messageFor(kind apperr.Kind) string {
	switch kind {
	case apperr.KindCityNotFound:
		return "Kota tidak ditemukan"
	case apperr.KindScheduleNotFound:
		return "Jadwal sholat untuk tanggal ini belum tersedia"
	case apperr.KindProvinceNotFound:
		return "Provinsi tidak ditemukan"
	case apperr.KindNotFound:
		return "Data tidak ditemukan"
	case apperr.KindInvalidInput:
		return "Input tidak valid"
	case apperr.KindUpstreamUnavailable:
		return "Sumber data sedang tidak tersedia, coba lagi nanti"
	default:
		return "Terjadi kesalahan pada server"
	}
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonOK: response sukses generic (GET detail, dsb)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonList: list + count (tanpa pagination, data referensi selalu utuh)
func JsonList(c *fiber.Ctx, message string, data any, count int) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
		"count":   count,
	})
}

package handler

import (
	"errors"

	"go-inventory-tracker/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:   fiber.StatusBadRequest,
	apperr.KindConflict:     fiber.StatusConflict,
	apperr.KindNotFound:     fiber.StatusNotFound,
	apperr.KindUnauthorized: fiber.StatusUnauthorized,
	apperr.KindForbidden:    fiber.StatusForbidden,
	apperr.KindStore:        fiber.StatusInternalServerError,
}

// ErrorHandler renders every error as {"error": message, "kind": kind}
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message, "kind": "HTTPError"})
		}

		var appErr *apperr.Error
		if !errors.As(err, &appErr) {
			appErr = &apperr.Error{Kind: apperr.KindStore, Message: "storage failure", Err: err}
		}

		status, ok := statusByKind[appErr.Kind]
		if !ok {
			status = fiber.StatusInternalServerError
		}
		message := appErr.Message
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			message = "internal server error"
		}
		return c.Status(status).JSON(fiber.Map{"error": message, "kind": appErr.Kind})
	}
}

package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/apperr"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindUnsupportedFormat, apperr.KindExtraction:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindSessionComplete:
		return fiber.StatusConflict
	case apperr.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error as {"error", "kind", "code"}. Only the
// client-safe message is exposed; the cause is logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"kind":  kindForStatus(fe.Code),
			"code":  fe.Code,
		})
	}

	kind := apperr.KindOf(err)
	code := StatusOf(kind)
	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": apperr.MessageOf(err),
		"kind":  kind,
		"code":  code,
	})
}

func kindForStatus(code int) apperr.Kind {
	switch {
	case code == fiber.StatusNotFound:
		return apperr.KindNotFound
	case code >= 400 && code < 500:
		return apperr.KindValidation
	}
	return apperr.KindInternal
}

func invalidPayload() error {
	return apperr.Validation("Invalid request payload")
}

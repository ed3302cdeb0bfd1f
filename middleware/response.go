package middleware

import (
	"dormaid/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed", errors)
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind utils.Kind) int {
	switch kind {
	case utils.KindValidation:
		return fiber.StatusBadRequest
	case utils.KindAuth:
		return fiber.StatusUnauthorized
	case utils.KindForbidden:
		return fiber.StatusForbidden
	case utils.KindNotFound:
		return fiber.StatusNotFound
	case utils.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors returned by handlers in the JSON envelope.
// Internal failures are logged; their detail reaches the client only when
// production is false.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind != utils.KindInternal {
				return JsonResponse(c, StatusFor(appErr.Kind), false, appErr.Message, nil)
			}
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), appErr)
			return internalResponse(c, production, appErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return JsonResponse(c, fiberErr.Code, false, fiberErr.Message, nil)
		}

		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return internalResponse(c, production, err)
	}
}

func internalResponse(c *fiber.Ctx, production bool, err error) error {
	msg := "Internal server error"
	if !production {
		msg = err.Error()
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, msg, nil)
}

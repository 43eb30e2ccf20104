package server

import (
	"Cruder/internal/crud"
	"Cruder/internal/services"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders errors that escape the handlers as {"error": ...}.
// Key coercion failures become 400.
func ErrorHandler(logService services.LogService) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		fields := logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"error":  err.Error(),
		}

		var keyErr *crud.KeyError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &keyErr):
			code = fiber.StatusBadRequest
			logService.Log.WithFields(fields).Warn("invalid key")
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		default:
			logService.Log.WithFields(fields).Error("request failed")
		}

		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

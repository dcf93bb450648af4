package middleware

import (
	"errors"

	"taskapi/internal/apperr"
	"taskapi/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the single boundary that turns returned errors into the
// error envelope. Handlers and repositories never write error responses
// themselves.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var ae *apperr.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		status = ae.Status()
		message = ae.Message
	case errors.As(err, &fe):
		status = fe.Code
		message = fe.Message
	}

	switch {
	case status == fiber.StatusUnauthorized:
		logger.SecurityLogger.Warn(message,
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
		)
	case status >= fiber.StatusInternalServerError:
		logger.ErrorLogger.Error(message,
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"message":    message,
		"success":    false,
	})
}

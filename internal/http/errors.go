package http

import (
	"errors"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps errors escaping the handlers onto the response taxonomy:
// tagged application errors carry their own status, fiber errors pass
// through, anything else is a logged 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return c.Status(apperr.StatusCode(err)).JSON(dto.ErrorResponse{
				Message: appErr.Message,
				Error:   apperr.Cause(err),
			})
		}
		var fibErr *fiber.Error
		if errors.As(err, &fibErr) {
			return c.Status(fibErr.Code).JSON(dto.ErrorResponse{Message: fibErr.Message})
		}
		log.Error("unhandled error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Internal server error"})
	}
}

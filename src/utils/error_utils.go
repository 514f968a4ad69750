package utils

import (
	"errors"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleAppError writes err using its kind. Errors that are not AppErrors are logged and
// reported as a generic internal error.
func HandleAppError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	status := StatusFor(appErr.Kind)
	if status == fiber.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Status:       status,
		Message:      appErr.Message,
		SubmissionID: appErr.SubmissionID,
	})
}

func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

package middleware

import (
	"time"

	"Backend-Schoolhub/src/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags every request with an id and logs it once the handler chain returns.
func RequestLogger(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(HeaderRequestID, id)

	start := time.Now()
	err := c.Next()

	fields := []zap.Field{
		zap.String("requestId", id),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		logger.Log.Error("request", append(fields, zap.Error(err))...)
		return err
	}
	logger.Log.Info("request", fields...)
	return nil
}

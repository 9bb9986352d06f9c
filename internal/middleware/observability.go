package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CtxRequestID    = "requestID"
	HeaderRequestID = "X-Request-ID"
)

// ObservabilityMiddleware tags each request with an id and emits one access
// log line once the handler chain has run. When the request carries an
// authenticated principal the staff member's id is logged too, so access
// lines can be matched against audit rows.
func ObservabilityMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(CtxRequestID, reqID)
		c.Set(HeaderRequestID, reqID)

		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("requestId", reqID),
			zap.String("method", c.Method()),
			zap.String("route", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if p := GetPrincipal(c); p != nil {
			fields = append(fields, zap.Uint("userId", p.UserID))
		}
		log.Info("http request", fields...)

		return err
	}
}

package middleware

import (
	"strings"

	"github.com/bienestar-escolar/backend/internal/auth"
	"github.com/bienestar-escolar/backend/internal/config"
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const CtxPrincipal = "principal"

// AuthMiddleware verifies the bearer token and attaches the principal.
// Missing, malformed, expired or badly signed tokens all reject with 401.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Authentication required"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Invalid token"})
		}

		c.Locals(CtxPrincipal, claims)
		return c.Next()
	}
}

// GetPrincipal returns the authenticated claims, or nil on unauthenticated
// routes.
func GetPrincipal(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(CtxPrincipal).(*auth.Claims)
	return claims
}

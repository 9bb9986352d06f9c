package handlers

import (
	"strings"

	"github.com/bienestar-escolar/backend/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// actorID is the principal's id for audit attribution, nil on
// unauthenticated paths.
func actorID(c *fiber.Ctx) *uint {
	if p := middleware.GetPrincipal(c); p != nil {
		id := p.UserID
		return &id
	}
	return nil
}

// paging reads and clamps the page/limit parameters so the echoed values
// always match what the store serves.
func paging(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// queryGetter adapts a fiber context to the filter compiler's parameter
// source.
func queryGetter(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}

// relations parses the comma-separated relations query parameter, falling
// back to the entity's defaults when absent. Unknown names are dropped later
// by the store's allow-list.
func relations(c *fiber.Ctx, defaults ...string) []string {
	raw := c.Query("relations")
	if raw == "" {
		return defaults
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

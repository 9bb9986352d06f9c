package middleware

import (
	"sync"
	"time"

	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware limits requests per client IP. It is applied to the
// login route to damp credential brute-forcing; state is in-memory, which is
// enough for the single-node deployment model.
func RateLimitMiddleware(rps float64, burst int) fiber.Handler {
	var (
		mtx      sync.Mutex
		visitors = make(map[string]*visitor)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mtx.Lock()
			for ip, v := range visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(visitors, ip)
				}
			}
			mtx.Unlock()
		}
	}()

	return func(c *fiber.Ctx) error {
		ip := c.IP()

		mtx.Lock()
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			visitors[ip] = v
		}
		v.lastSeen = time.Now()
		mtx.Unlock()

		if !v.limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Message: "Too many requests"})
		}
		return c.Next()
	}
}

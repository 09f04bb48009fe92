package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/tourist-map/internal/pkg/errors"
	"github.com/tourist-map/internal/pkg/utils"
)

// RateLimit - ограничение запросов в минуту с одного IP
func RateLimit(maxRequests int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, errors.ErrRateLimited)
		},
	})
}

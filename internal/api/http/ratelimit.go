package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// NewRateLimiter builds a redis-backed fixed-window limiter keyed by
// client IP and path. Redis being unreachable never blocks public
// traffic: the limiter fails open.
func NewRateLimiter(cfg config.RateLimitConfig, redis *persistence.Redis, logger *zap.Logger) fiber.Handler {
	if !cfg.Enabled || redis == nil || redis.Client == nil {
		return nil
	}

	limit := int64(cfg.RequestsPerMin)
	if limit <= 0 {
		return nil
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.IP())

		// INCR and EXPIRE travel in one pipeline; EXPIRE NX only sets a
		// TTL when the key has none, so a key can never survive its
		// window and lock a client out permanently.
		pipe := redis.Client.TxPipeline()
		incr := pipe.Incr(c.Context(), key)
		pipe.ExpireNX(c.Context(), key, time.Minute)
		if _, err := pipe.Exec(c.Context()); err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if incr.Val() > limit {
			return apperrors.NewDomainError("RATE_LIMITED", "too many requests", fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}

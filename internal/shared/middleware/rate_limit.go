package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/infrastructure/metrics"
	"smartlibrary-backend/internal/shared/response"
	"smartlibrary-backend/pkg/cache"
	"smartlibrary-backend/pkg/logger"
)

// RateLimitConfig is a fixed window quota per authenticated user
type RateLimitConfig struct {
	Scope  string
	Limit  int
	Window time.Duration
	Now    func() time.Time
}

// RateLimit counts requests per user and window in the cache.
// Runs after AuthMiddleware. When the cache is unreachable requests pass.
func RateLimit(counter cache.Cache, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Window < time.Second {
		cfg.Window = time.Minute
	}

	return func(c *gin.Context) {
		if counter == nil || cfg.Limit <= 0 {
			c.Next()
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			userID = c.ClientIP()
		}

		window := cfg.Now().Unix() / int64(cfg.Window/time.Second)
		key := fmt.Sprintf("ratelimit:%s:%s:%d", cfg.Scope, userID, window)

		count, err := counter.Increment(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", map[string]interface{}{
				"scope": cfg.Scope,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		if count == 1 {
			if err := counter.Expire(c.Request.Context(), key, cfg.Window); err != nil {
				logger.Warn("rate limiter expire failed", map[string]interface{}{
					"key":   key,
					"error": err.Error(),
				})
			}
		}

		remaining := int64(cfg.Limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Limit) {
			metrics.RecordRateLimitRejection(cfg.Scope)
			response.TooManyRequests(c, "Too many requests, please slow down")
			return
		}

		c.Next()
	}
}

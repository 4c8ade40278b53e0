package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows max requests per client IP in each fixed window, counted
// in Redis. It fails open when Redis errors and is disabled when client is
// nil or max is 0. It needs Redis 7 for EXPIRE NX.
func RateLimit(client redis.Cmdable, max int64, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || max <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		// Set on every hit so a key that missed its TTL still expires. NX
		// leaves a running window alone.
		if err := client.ExpireNX(ctx, key, window).Err(); err != nil {
			logger.Warn("rate limiter window not set", "key", key, "error", err)
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(max, 10))
		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				models.ErrorResponse("too many requests, please try again later"))
			return
		}
		c.Next()
	}
}

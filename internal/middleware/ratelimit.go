package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/metrics"
	"github.com/jkco/site-core/internal/pkg/redis"
	"github.com/jkco/site-core/internal/pkg/response"
	"go.uber.org/zap"
)

const loginWindow = time.Minute

// LoginRateLimit caps login attempts per client IP per minute. It is a no-op
// without Redis, and lets requests through when Redis errors.
func LoginRateLimit(rdb *redis.Client, perMinute int, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("%slogin:%s:%d", redis.KeyPrefix, ip, time.Now().Unix()/int64(loginWindow.Seconds()))
		count, err := rdb.Hit(c.Request.Context(), key, loginWindow+time.Second)
		if err != nil {
			log.Warn("login rate limit unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(perMinute) {
			metrics.LoginAttempts.WithLabelValues("throttled").Inc()
			c.Header("Retry-After", "60")
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/redis"
	"github.com/jkco/site-core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 60 * time.Second
	maxIdempotencyKey = 128
)

// Idempotency rejects a repeated POST carrying the same Idempotency-Key
// while the first one is running or for a minute after it succeeded, so a
// double-submitted form cannot upload and create twice. Requests without the
// header, or without Redis, pass through.
func Idempotency(rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if rdb == nil || c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKey {
			response.BadRequest(c, "Idempotency-Key is too long")
			return
		}

		redisKey := redis.KeyPrefix + "idempotency:" + c.Request.URL.Path + ":" + key
		ctx := c.Request.Context()

		claimed, err := rdb.Claim(ctx, redisKey, "0", idempotencyTTL)
		if err != nil {
			log.Warn("idempotency check unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			msg := "This request was already processed"
			if v, _ := rdb.Get(ctx, redisKey); v == "0" {
				msg = "This request is already being processed"
			}
			c.AbortWithStatusJSON(http.StatusConflict, response.Envelope{Message: msg})
			return
		}

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = rdb.Set(ctx, redisKey, "1", idempotencyTTL)
		} else {
			_ = rdb.Del(ctx, redisKey)
		}
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/jwt"
	"github.com/jkco/site-core/internal/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeVerifier struct{ valid string }

func (f fakeVerifier) Verify(_ context.Context, token string) (*jwt.Claims, error) {
	if token != f.valid {
		return nil, errors.New("bad token")
	}
	return &jwt.Claims{Role: jwt.RoleAdmin}, nil
}

func TestAuth(t *testing.T) {
	r := gin.New()
	r.GET("/private", Auth(fakeVerifier{valid: "good"}), func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		assert.True(t, ok)
		c.String(http.StatusOK, claims.Role)
	})

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
		{"bearer   good ", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "header %q", tt.header)
	}
}

func TestLoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	r := gin.New()
	r.POST("/login", LoginRateLimit(rdb, 2, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoginRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/login", LoginRateLimit(nil, 1, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123")))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoggerRecordsRequests(t *testing.T) {
	r := gin.New()
	r.Use(Logger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotency(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	calls := 0
	fail := false
	r := gin.New()
	r.POST("/api/articles", Idempotency(rdb, zap.NewNop()), func(c *gin.Context) {
		calls++
		if fail {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusCreated)
	})

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send("k1"))
	assert.Equal(t, http.StatusConflict, send("k1"))
	assert.Equal(t, 1, calls)

	assert.Equal(t, http.StatusCreated, send(""))
	assert.Equal(t, http.StatusCreated, send(""))
	assert.Equal(t, 3, calls)

	fail = true
	assert.Equal(t, http.StatusBadRequest, send("k2"))
	assert.Equal(t, http.StatusBadRequest, send("k2"))
	assert.Equal(t, 5, calls)

	mr.FastForward(2 * time.Minute)
	fail = false
	assert.Equal(t, http.StatusCreated, send("k1"))
	assert.Equal(t, http.StatusBadRequest, send(strings.Repeat("x", 200)))
}

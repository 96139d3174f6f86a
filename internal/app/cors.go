package app

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/middleware"
)

// corsMiddleware allows every origin in development or when no origins are
// configured; otherwise only origins matching one of the patterns.
func corsMiddleware(origins []string, dev bool) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyHeader},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
	}
	if len(origins) > 0 && !dev {
		patterns := origins
		cfg.AllowOriginFunc = func(origin string) bool {
			host := originHost(origin)
			for _, p := range patterns {
				if matchOrigin(originHost(p), host) {
					return true
				}
			}
			return false
		}
	} else {
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(cfg)
}

// originHost returns the "host[:port]" part of an origin or pattern.
func originHost(origin string) string {
	if i := strings.Index(origin, "://"); i >= 0 {
		origin = origin[i+3:]
	}
	if i := strings.IndexByte(origin, '/'); i >= 0 {
		origin = origin[:i]
	}
	return strings.ToLower(origin)
}

// matchOrigin supports exact hosts, "*.example.com" and "localhost:*".
func matchOrigin(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}

package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/config"
	"github.com/jkco/site-core/internal/middleware"
	"github.com/jkco/site-core/internal/modules/auth"
	"github.com/jkco/site-core/internal/modules/content/article"
	"github.com/jkco/site-core/internal/modules/content/gallery"
	"github.com/jkco/site-core/internal/pkg/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	apiPrefix     = "/api"
	healthTimeout = 3 * time.Second
	// Multipart framing and text fields on top of the image itself.
	formOverhead = 1 << 20
)

func (a *App) registerRoutes() {
	r := a.router
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(a.cfg.Telemetry.ServiceName))
	r.Use(middleware.Logger(a.log))
	r.Use(corsMiddleware(a.cfg.AllowedOrigins, a.cfg.IsDev()))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", a.info)
	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if a.cfg.Media.Driver == config.MediaLocal {
		r.Static(localMediaPath, a.cfg.StaticDir())
	}
	if dir := a.cfg.AdminDir(); dir != "" {
		r.Static("/admin", dir)
	}

	maxUpload := a.cfg.MaxUploadBytes()
	api := r.Group(apiPrefix)
	api.Use(middleware.BodyLimit(maxUpload + formOverhead))
	api.Use(middleware.Idempotency(a.deps.Redis, a.log))

	authMW := middleware.Auth(a.gate)
	limiter := middleware.LoginRateLimit(a.deps.Redis, a.cfg.RateLimit.LoginPerMinute, a.log)

	auth.NewHandler(a.gate).RegisterRoutes(api, limiter)
	article.NewHandler(a.publish, maxUpload).RegisterRoutes(api, authMW)
	gallery.NewHandler(a.publish, maxUpload).RegisterRoutes(api, authMW)
}

// info GET /
func (a *App) info(c *gin.Context) {
	endpoints := gin.H{
		"articles":    apiPrefix + "/articles",
		"newsletters": apiPrefix + "/newsletters",
		"gallery":     apiPrefix + "/images",
		"auth":        apiPrefix + "/auth",
	}
	if a.cfg.AdminDir() != "" {
		endpoints["admin"] = "/admin"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   a.cfg.Content.DefaultAuthor + " - Backend API",
		"version":   "1.0.0",
		"endpoints": endpoints,
	})
}

// health GET /health
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok"}
	if a.deps.Ping != nil {
		if err := a.deps.Ping(ctx); err != nil {
			a.log.Warn("health: database ping failed", zap.Error(err))
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}
	}
	switch {
	case a.deps.Redis == nil:
		checks["redis"] = "disabled"
	case a.deps.Redis.Ping(ctx) != nil:
		// Redis only backs revocation and rate limiting, both of which fail open.
		checks["redis"] = "down"
	default:
		checks["redis"] = "ok"
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"checks":  checks,
		"uptime":  time.Since(a.started).Round(time.Second).String(),
	})
}

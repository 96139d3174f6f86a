package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/config"
	"github.com/jkco/site-core/internal/database"
	"github.com/jkco/site-core/internal/modules/auth"
	"github.com/jkco/site-core/internal/modules/content/publish"
	"github.com/jkco/site-core/internal/modules/storage/media"
	"github.com/jkco/site-core/internal/pkg/jwt"
	pkgredis "github.com/jkco/site-core/internal/pkg/redis"
	"github.com/jkco/site-core/internal/pkg/telemetry"
	"github.com/jkco/site-core/internal/repository"
	"go.uber.org/zap"
)

// Deps are the external resources the HTTP surface runs on.
type Deps struct {
	Stores repository.Stores
	Media  media.Store
	// Redis is optional. Without it logout does not revoke tokens and the
	// login limiter is off.
	Redis *pkgredis.Client
	// Ping reports database health.
	Ping func(ctx context.Context) error
}

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	log     *zap.Logger
	deps    Deps
	gate    *auth.Gate
	publish *publish.Service
	started time.Time
	closers []func(ctx context.Context) error
}

// New initializes the application: telemetry, database, Redis, media store
// and routes.
func New(ctx context.Context, log *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var closers []func(ctx context.Context) error
	fail := func(err error) (*App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i](context.Background())
		}
		return nil, err
	}

	stopTracing, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Env,
		Insecure:    cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	closers = append(closers, stopTracing)

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return fail(fmt.Errorf("database: %w", err))
	}
	closers = append(closers, db.Close)

	var rc *pkgredis.Client
	if cfg.Redis.Enabled() {
		rc, err = pkgredis.Connect(cfg.Redis.URLValue())
		if err != nil {
			return fail(fmt.Errorf("redis: %w", err))
		}
		closers = append(closers, func(context.Context) error { return rc.Close() })
	} else {
		log.Warn("redis disabled, logout will not revoke tokens and login is not rate limited")
	}

	store, err := newMediaStore(cfg, log)
	if err != nil {
		return fail(err)
	}

	a, err := build(log, cfg, Deps{Stores: db.Stores, Media: store, Redis: rc, Ping: db.Ping})
	if err != nil {
		return fail(err)
	}
	a.closers = closers
	log.Info("application ready",
		zap.String("database", db.Driver),
		zap.String("media", cfg.Media.Driver),
		zap.Bool("redis", rc != nil),
	)
	return a, nil
}

// build wires services and routes on top of deps.
func build(log *zap.Logger, cfg *config.AppConfig, deps Deps) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	signer, err := jwt.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token signer: %w", err)
	}
	var denylist auth.Denylist
	if deps.Redis != nil {
		denylist = auth.NewRedisDenylist(deps.Redis)
	}
	gate, err := auth.NewGate(auth.Credentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, signer, denylist, log)
	if err != nil {
		return nil, err
	}

	svc := publish.NewService(deps.Stores.Articles, deps.Stores.Gallery, deps.Media, log, publish.Options{
		DefaultAuthor: cfg.Content.DefaultAuthor,
		OrphanPolicy:  publish.OrphanPolicy(cfg.Media.OrphanPolicy),
	})

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{
		cfg:     cfg,
		router:  gin.New(),
		log:     log,
		deps:    deps,
		gate:    gate,
		publish: svc,
		started: time.Now(),
	}
	a.registerRoutes()
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases connections and flushes traces, newest first.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

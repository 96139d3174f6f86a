package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jkco/site-core/internal/config"
	"github.com/jkco/site-core/internal/repository"
	"github.com/jkco/site-core/internal/repository/mongostore"
	"github.com/jkco/site-core/internal/repository/sqlstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// Handle is an open content database.
type Handle struct {
	Driver string
	Stores repository.Stores

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (h *Handle) Ping(ctx context.Context) error { return h.ping(ctx) }

func (h *Handle) Close(ctx context.Context) error { return h.close(ctx) }

// Connect opens the configured driver and prepares its schema (indexes for
// MongoDB, auto-migration for MySQL).
func Connect(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return connectMySQL(cfg, log)
	default:
		return connectMongo(ctx, cfg, log)
	}
}

func connectMongo(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*Handle, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	db := client.Database(cfg.Database.Mongo.Name)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info("mongodb connected", zap.String("database", cfg.Database.Mongo.Name))

	return &Handle{
		Driver: config.DriverMongo,
		Stores: mongostore.New(db, cfg.Content.DefaultAuthor),
		ping:   func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:  client.Disconnect,
	}, nil
}

func connectMySQL(cfg *config.AppConfig, log *zap.Logger) (*Handle, error) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.MySQL.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db: %w", err)
	}
	if err := sqlstore.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info("mysql connected", zap.String("database", cfg.Database.MySQL.Name))

	return &Handle{
		Driver: config.DriverMySQL,
		Stores: sqlstore.New(db, cfg.Content.DefaultAuthor),
		ping:   sqlDB.PingContext,
		close:  func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func logLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

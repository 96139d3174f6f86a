package app

import (
	"fmt"

	"github.com/jkco/site-core/internal/config"
	"github.com/jkco/site-core/internal/modules/storage/media"
	"go.uber.org/zap"
)

const localMediaPath = "/media"

// newMediaStore builds the configured backend behind a circuit breaker.
func newMediaStore(cfg *config.AppConfig, log *zap.Logger) (*media.Manager, error) {
	var backend media.Backend
	switch cfg.Media.Driver {
	case config.MediaS3:
		s3cfg := cfg.Media.S3
		b, err := media.NewS3Backend(media.S3Config{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			PathStyle:       s3cfg.PathStyle,
			PublicBaseURL:   s3cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 media backend: %w", err)
		}
		backend = b
	default:
		base := cfg.Media.PublicBaseURL
		if base == "" {
			base = localMediaPath
		}
		b, err := media.NewLocalBackend(cfg.StaticDir(), base)
		if err != nil {
			return nil, fmt.Errorf("local media backend: %w", err)
		}
		backend = b
	}

	constraints := media.Constraints{
		MaxBytes:       cfg.MaxUploadBytes(),
		AllowedFormats: cfg.Media.AllowedFormats,
		MaxWidth:       cfg.Media.MaxWidth,
		MaxHeight:      cfg.Media.MaxHeight,
		MaxPixels:      cfg.Media.MaxPixels,
		Quality:        cfg.Media.Quality,
	}
	breaker := media.NewBreakerBackend(backend, media.DefaultBreakerConfig(), log)
	return media.NewManager(breaker, constraints, cfg.Media.Folder, log), nil
}

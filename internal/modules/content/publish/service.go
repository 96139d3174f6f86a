// Package publish coordinates the content repositories with the media store
// so that records and stored images stay consistent.
package publish

import (
	"context"
	"errors"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/modules/storage/media"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/pkg/metrics"
	"github.com/jkco/site-core/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	entityArticle = "article"
	entityGallery = "gallery"
	entityContent = "content"
)

// Options tune the service.
type Options struct {
	DefaultAuthor string
	OrphanPolicy  OrphanPolicy
}

// Service is the only component allowed to change a record's media binding.
type Service struct {
	articles repository.ArticleRepository
	gallery  repository.GalleryRepository
	store    media.Store
	log      *zap.Logger
	opts     Options
	tracer   trace.Tracer
}

func NewService(articles repository.ArticleRepository, gallery repository.GalleryRepository, store media.Store, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultAuthor == "" {
		opts.DefaultAuthor = models.DefaultAuthor
	}
	if !opts.OrphanPolicy.Valid() {
		opts.OrphanPolicy = OrphanKeep
	}
	return &Service{
		articles: articles,
		gallery:  gallery,
		store:    store,
		log:      log.Named("publish"),
		opts:     opts,
		tracer:   otel.Tracer("github.com/jkco/site-core/publish"),
	}
}

func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "publish."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) upload(ctx context.Context, entity string, u media.Upload) (media.Object, error) {
	obj, err := s.store.Upload(ctx, u)
	if err != nil {
		metrics.MediaUploads.WithLabelValues(entity, "error").Inc()
		return media.Object{}, err
	}
	metrics.MediaUploads.WithLabelValues(entity, "ok").Inc()
	return obj, nil
}

// compensate removes an object whose record could not be written. Failures
// are logged and counted; the caller still returns its original error.
func (s *Service) compensate(ctx context.Context, entity, mediaID string, cause error) {
	err := s.store.Delete(context.WithoutCancel(ctx), mediaID)
	if err != nil {
		metrics.CompensatingDeletes.WithLabelValues(entity, "error").Inc()
		metrics.CleanupFailures.WithLabelValues(entity, "compensation").Inc()
		s.log.Error("compensating delete failed, object orphaned",
			zap.String("entity", entity),
			zap.String("media_id", mediaID),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return
	}
	metrics.CompensatingDeletes.WithLabelValues(entity, "ok").Inc()
	s.log.Warn("removed upload after failed write",
		zap.String("entity", entity),
		zap.String("media_id", mediaID),
		zap.NamedError("cause", cause))
}

// cleanup deletes a no longer referenced object without surfacing failures.
func (s *Service) cleanup(ctx context.Context, entity, reason, mediaID string) {
	if mediaID == "" {
		return
	}
	if err := s.store.Delete(context.WithoutCancel(ctx), mediaID); err != nil {
		metrics.CleanupFailures.WithLabelValues(entity, reason).Inc()
		s.log.Error("media cleanup failed",
			zap.String("entity", entity),
			zap.String("reason", reason),
			zap.String("media_id", mediaID),
			zap.Error(err))
	}
}

// orphan applies the orphan policy to an object that lost its record.
func (s *Service) orphan(ctx context.Context, entity, mediaID string) {
	if mediaID == "" {
		return
	}
	if s.opts.OrphanPolicy == OrphanDelete {
		s.cleanup(ctx, entity, "replaced-by-url", mediaID)
		return
	}
	metrics.OrphansKept.WithLabelValues(entity).Inc()
	s.log.Info("stored media left unreferenced",
		zap.String("entity", entity),
		zap.String("media_id", mediaID))
}

// UploadContentImage stores an image for inline use in article bodies.
func (s *Service) UploadContentImage(ctx context.Context, u media.Upload) (obj media.Object, err error) {
	ctx, span := s.start(ctx, "UploadContentImage")
	defer func() { finish(span, err) }()

	return s.upload(ctx, entityContent, u)
}

// withoutField drops field from a validation error, returning nil when
// nothing else failed.
func withoutField(err error, field string) error {
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	rest := apperr.NewValidation()
	for k, v := range verr.Fields {
		if k != field {
			rest.Add(k, v)
		}
	}
	return rest.OrNil()
}

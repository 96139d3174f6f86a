package publish

import (
	"context"
	"strings"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/modules/storage/media"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

func (s *Service) ListGallery(ctx context.Context, f repository.GalleryFilter, page repository.Page) (repository.ListResult[models.GalleryImage], error) {
	return s.gallery.List(ctx, f, page)
}

func (s *Service) GetGalleryImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	return s.gallery.GetByID(ctx, id)
}

// CreateGalleryImage stores an uploaded picture and records it.
func (s *Service) CreateGalleryImage(ctx context.Context, in GalleryInput, upload *media.Upload) (g *models.GalleryImage, err error) {
	ctx, span := s.start(ctx, "CreateGalleryImage")
	defer func() { finish(span, err) }()

	if upload == nil {
		return nil, apperr.NewValidation("image", "Please upload an image")
	}
	g = in.image()
	g.ImageURL = ""
	g.Normalize()
	if err := withoutField(models.ValidateGalleryImage(g), "imageUrl"); err != nil {
		return nil, err
	}

	obj, err := s.upload(ctx, entityGallery, *upload)
	if err != nil {
		return nil, err
	}
	g.ImageURL, g.MediaID, g.IsExternal = obj.URL, obj.MediaID, false
	if err := s.gallery.Create(ctx, g); err != nil {
		s.compensate(ctx, entityGallery, obj.MediaID, err)
		return nil, err
	}
	return g, nil
}

// CreateGalleryImageByURL records an externally hosted picture. The media
// store is not involved.
func (s *Service) CreateGalleryImageByURL(ctx context.Context, in GalleryInput) (g *models.GalleryImage, err error) {
	ctx, span := s.start(ctx, "CreateGalleryImageByURL")
	defer func() { finish(span, err) }()

	g = in.image()
	g.Normalize()
	verr := apperr.NewValidation()
	if e := withoutField(models.ValidateGalleryImage(g), "imageUrl"); e != nil {
		if !apperr.IsValidation(e) {
			return nil, e
		}
		for k, v := range e.(*apperr.ValidationError).Fields {
			verr.Add(k, v)
		}
	}
	link, e := externalURL(g.ImageURL)
	if e != nil {
		verr.Add("imageUrl", e.(*apperr.ValidationError).Fields["imageUrl"])
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	g.ImageURL, g.MediaID, g.IsExternal = link, "", true
	if err := s.gallery.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGalleryImage applies the supplied fields and, like UpdateArticle,
// swaps the image when a file or a different URL is given.
func (s *Service) UpdateGalleryImage(ctx context.Context, id string, in GalleryPatchInput, upload *media.Upload) (g *models.GalleryImage, err error) {
	ctx, span := s.start(ctx, "UpdateGalleryImage", attribute.String("id", id), attribute.Bool("upload", upload != nil))
	defer func() { finish(span, err) }()

	patch := in.patch()
	if err := models.ValidateGalleryPatch(patch); err != nil {
		return nil, err
	}
	current, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upload != nil {
		obj, err := s.upload(ctx, entityGallery, *upload)
		if err != nil {
			return nil, err
		}
		external := false
		patch.ImageURL, patch.MediaID, patch.IsExternal = &obj.URL, &obj.MediaID, &external
		updated, err := s.gallery.Update(ctx, id, patch)
		if err != nil {
			s.compensate(ctx, entityGallery, obj.MediaID, err)
			return nil, err
		}
		s.cleanup(ctx, entityGallery, "replaced", current.MediaID)
		return updated, nil
	}

	var released string
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != current.ImageURL {
		link, err := externalURL(*in.ImageURL)
		if err != nil {
			return nil, err
		}
		empty, external := "", true
		patch.ImageURL, patch.MediaID, patch.IsExternal = &link, &empty, &external
		released = current.MediaID
	}

	if patch.Empty() {
		return current, nil
	}
	updated, err := s.gallery.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.orphan(ctx, entityGallery, released)
	return updated, nil
}

// DeleteGalleryImage removes the record first, then its stored image if any.
func (s *Service) DeleteGalleryImage(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, "DeleteGalleryImage", attribute.String("id", id))
	defer func() { finish(span, err) }()

	current, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return err
	}
	if !current.IsExternal {
		s.cleanup(ctx, entityGallery, "deleted", current.MediaID)
	}
	return nil
}

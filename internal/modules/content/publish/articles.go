package publish

import (
	"context"
	"strings"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/modules/storage/media"
	"github.com/jkco/site-core/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

func (s *Service) ListArticles(ctx context.Context, f repository.ArticleFilter, page repository.Page) (repository.ListResult[models.Article], error) {
	return s.articles.List(ctx, f, page)
}

func (s *Service) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.articles.GetByID(ctx, id)
}

// CreateArticle validates in, uploads the optional image and persists the
// article. A failed write removes the fresh upload.
func (s *Service) CreateArticle(ctx context.Context, in ArticleInput, upload *media.Upload) (a *models.Article, err error) {
	ctx, span := s.start(ctx, "CreateArticle", attribute.Bool("upload", upload != nil))
	defer func() { finish(span, err) }()

	a = in.article()
	a.Normalize(s.opts.DefaultAuthor)
	if err := models.ValidateArticle(a); err != nil {
		return nil, err
	}

	if upload == nil {
		if strings.TrimSpace(in.ImageURL) != "" {
			link, err := externalURL(in.ImageURL)
			if err != nil {
				return nil, err
			}
			a.ImageURL = link
		}
		if err := s.articles.Create(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}

	obj, err := s.upload(ctx, entityArticle, *upload)
	if err != nil {
		return nil, err
	}
	a.ImageURL, a.MediaID = obj.URL, obj.MediaID
	if err := s.articles.Create(ctx, a); err != nil {
		s.compensate(ctx, entityArticle, obj.MediaID, err)
		return nil, err
	}
	return a, nil
}

// UpdateArticle applies the supplied fields. A new upload replaces the stored
// image; an ImageURL switches the article to an external link, and an empty
// ImageURL removes the image.
func (s *Service) UpdateArticle(ctx context.Context, id string, in ArticlePatchInput, upload *media.Upload) (a *models.Article, err error) {
	ctx, span := s.start(ctx, "UpdateArticle", attribute.String("id", id), attribute.Bool("upload", upload != nil))
	defer func() { finish(span, err) }()

	patch := in.patch()
	if err := models.ValidateArticlePatch(patch); err != nil {
		return nil, err
	}
	current, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upload != nil {
		obj, err := s.upload(ctx, entityArticle, *upload)
		if err != nil {
			return nil, err
		}
		patch.ImageURL, patch.MediaID = &obj.URL, &obj.MediaID
		updated, err := s.articles.Update(ctx, id, patch)
		if err != nil {
			s.compensate(ctx, entityArticle, obj.MediaID, err)
			return nil, err
		}
		s.cleanup(ctx, entityArticle, "replaced", current.MediaID)
		return updated, nil
	}

	var released string
	if in.ImageURL != nil {
		link := strings.TrimSpace(*in.ImageURL)
		switch {
		case link == current.ImageURL:
		case link == "":
			empty := ""
			patch.ImageURL, patch.MediaID = &empty, &empty
			released = current.MediaID
		default:
			if link, err = externalURL(link); err != nil {
				return nil, err
			}
			empty := ""
			patch.ImageURL, patch.MediaID = &link, &empty
			released = current.MediaID
		}
	}

	if patch.Empty() {
		return current, nil
	}
	updated, err := s.articles.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.orphan(ctx, entityArticle, released)
	return updated, nil
}

// DeleteArticle removes the record first, then its stored image if any.
func (s *Service) DeleteArticle(ctx context.Context, id string) (err error) {
	ctx, span := s.start(ctx, "DeleteArticle", attribute.String("id", id))
	defer func() { finish(span, err) }()

	current, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.cleanup(ctx, entityArticle, "deleted", current.MediaID)
	return nil
}

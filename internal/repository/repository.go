// Package repository declares the persistence contracts for articles and
// gallery images. Drivers live in mongostore and sqlstore.
package repository

import (
	"context"

	"github.com/jkco/site-core/internal/models"
)

// Page selects a window of a listing.
type Page struct {
	Limit  int
	Offset int
}

// ListResult is one page of items together with the count of all matches.
type ListResult[T any] struct {
	Items []T
	Total int64
}

// ArticleFilter narrows article listings. Unpublished articles are excluded
// unless IncludeUnpublished is set.
type ArticleFilter struct {
	Category           models.ArticleCategory
	IncludeUnpublished bool
}

// GalleryFilter narrows gallery listings. Hidden images are excluded unless
// IncludeHidden is set.
type GalleryFilter struct {
	Category      models.GalleryCategory
	IncludeHidden bool
}

// ArticleRepository persists articles. Listings are ordered by publishedAt
// descending.
type ArticleRepository interface {
	List(ctx context.Context, filter ArticleFilter, page Page) (ListResult[models.Article], error)
	// GetByID returns apperr.ErrNotFound when id does not resolve.
	GetByID(ctx context.Context, id string) (*models.Article, error)
	// Create validates a, assigns its id and timestamps.
	Create(ctx context.Context, a *models.Article) error
	// Update applies only the supplied patch fields and returns the stored result.
	Update(ctx context.Context, id string, patch models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id string) error
}

// GalleryRepository persists gallery images. Listings are ordered by
// displayOrder ascending, then createdAt descending.
type GalleryRepository interface {
	List(ctx context.Context, filter GalleryFilter, page Page) (ListResult[models.GalleryImage], error)
	GetByID(ctx context.Context, id string) (*models.GalleryImage, error)
	Create(ctx context.Context, g *models.GalleryImage) error
	Update(ctx context.Context, id string, patch models.GalleryPatch) (*models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// Stores bundles the repositories produced by a driver.
type Stores struct {
	Articles ArticleRepository
	Gallery  GalleryRepository
}

// Package sqlstore implements the content repositories on MySQL through gorm.
package sqlstore

import (
	"errors"
	"fmt"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"gorm.io/gorm"
)

const component = "repository"

// New returns both repositories backed by db.
func New(db *gorm.DB, defaultAuthor string) repository.Stores {
	return repository.Stores{
		Articles: NewArticleRepo(db, defaultAuthor),
		Gallery:  NewGalleryRepo(db),
	}
}

// Migrate creates or updates the content tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Article{}, &models.GalleryImage{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return apperr.Dependency(component, err)
}

func paginate(q *gorm.DB, page repository.Page) *gorm.DB {
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	return q
}

package sqlstore

import (
	"context"
	"time"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"gorm.io/gorm"
)

// GalleryRepo stores gallery images in the "gallery_images" table.
type GalleryRepo struct {
	db *gorm.DB
}

func NewGalleryRepo(db *gorm.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

func (r *GalleryRepo) scope(ctx context.Context, f repository.GalleryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.GalleryImage{})
	if !f.IncludeHidden {
		q = q.Where("is_visible = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	return q
}

func (r *GalleryRepo) List(ctx context.Context, f repository.GalleryFilter, page repository.Page) (repository.ListResult[models.GalleryImage], error) {
	var out repository.ListResult[models.GalleryImage]
	if err := r.scope(ctx, f).Count(&out.Total).Error; err != nil {
		return out, wrap(err)
	}
	items := make([]models.GalleryImage, 0)
	q := r.scope(ctx, f).Order("display_order ASC").Order("created_at DESC")
	if err := paginate(q, page).Find(&items).Error; err != nil {
		return out, wrap(err)
	}
	out.Items = items
	return out, nil
}

func (r *GalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	var g models.GalleryImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, wrap(err)
	}
	return &g, nil
}

func (r *GalleryRepo) Create(ctx context.Context, g *models.GalleryImage) error {
	g.Normalize()
	if err := models.ValidateGalleryImage(g); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return wrap(err)
	}
	return nil
}

func (r *GalleryRepo) Update(ctx context.Context, id string, p models.GalleryPatch) (*models.GalleryImage, error) {
	if err := models.ValidateGalleryPatch(p); err != nil {
		return nil, err
	}
	g, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cols := galleryColumns(p)
	p.Apply(g)
	g.UpdatedAt = time.Now().UTC()
	cols["updated_at"] = g.UpdatedAt
	if err := r.db.WithContext(ctx).Model(g).Updates(cols).Error; err != nil {
		return nil, wrap(err)
	}
	return g, nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GalleryImage{})
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func galleryColumns(p models.GalleryPatch) map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	if p.MediaID != nil {
		cols["media_id"] = *p.MediaID
	}
	if p.IsExternal != nil {
		cols["is_external"] = *p.IsExternal
	}
	if p.Category != nil {
		cols["category"] = string(*p.Category)
	}
	if p.DisplayOrder != nil {
		cols["display_order"] = *p.DisplayOrder
	}
	if p.IsVisible != nil {
		cols["is_visible"] = *p.IsVisible
	}
	return cols
}

package sqlstore

import (
	"context"
	"time"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"gorm.io/gorm"
)

// ArticleRepo stores articles in the "articles" table.
type ArticleRepo struct {
	db            *gorm.DB
	defaultAuthor string
}

func NewArticleRepo(db *gorm.DB, defaultAuthor string) *ArticleRepo {
	if defaultAuthor == "" {
		defaultAuthor = models.DefaultAuthor
	}
	return &ArticleRepo{db: db, defaultAuthor: defaultAuthor}
}

func (r *ArticleRepo) scope(ctx context.Context, f repository.ArticleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Article{})
	if !f.IncludeUnpublished {
		q = q.Where("is_published = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	return q
}

func (r *ArticleRepo) List(ctx context.Context, f repository.ArticleFilter, page repository.Page) (repository.ListResult[models.Article], error) {
	var out repository.ListResult[models.Article]
	if err := r.scope(ctx, f).Count(&out.Total).Error; err != nil {
		return out, wrap(err)
	}
	items := make([]models.Article, 0)
	if err := paginate(r.scope(ctx, f).Order("published_at DESC"), page).Find(&items).Error; err != nil {
		return out, wrap(err)
	}
	out.Items = items
	return out, nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var a models.Article
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, wrap(err)
	}
	return &a, nil
}

func (r *ArticleRepo) Create(ctx context.Context, a *models.Article) error {
	a.Normalize(r.defaultAuthor)
	if err := models.ValidateArticle(a); err != nil {
		return err
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return wrap(err)
	}
	return nil
}

func (r *ArticleRepo) Update(ctx context.Context, id string, p models.ArticlePatch) (*models.Article, error) {
	if err := models.ValidateArticlePatch(p); err != nil {
		return nil, err
	}
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cols := articleColumns(p)
	p.Apply(a)
	a.UpdatedAt = time.Now().UTC()
	cols["updated_at"] = a.UpdatedAt
	if err := r.db.WithContext(ctx).Model(a).Updates(cols).Error; err != nil {
		return nil, wrap(err)
	}
	return a, nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Article{})
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// articleColumns lists only the columns a patch supplies so zero values are
// written when asked for and untouched otherwise.
func articleColumns(p models.ArticlePatch) map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Category != nil {
		cols["category"] = string(*p.Category)
	}
	if p.Summary != nil {
		cols["summary"] = *p.Summary
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	if p.MediaID != nil {
		cols["media_id"] = *p.MediaID
	}
	if p.Author != nil {
		cols["author"] = *p.Author
	}
	if p.IsPublished != nil {
		cols["is_published"] = *p.IsPublished
	}
	return cols
}

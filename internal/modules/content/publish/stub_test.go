package publish

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
)

type stubArticles struct {
	mu        sync.Mutex
	seq       int
	items     map[string]models.Article
	createErr error
	updateErr error
	deleteErr error
}

func newStubArticles() *stubArticles { return &stubArticles{items: map[string]models.Article{}} }

func (r *stubArticles) List(_ context.Context, f repository.ArticleFilter, _ repository.Page) (repository.ListResult[models.Article], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out repository.ListResult[models.Article]
	for _, a := range r.items {
		if !f.IncludeUnpublished && !a.IsPublished {
			continue
		}
		out.Items = append(out.Items, a)
	}
	out.Total = int64(len(out.Items))
	return out, nil
}

func (r *stubArticles) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &a, nil
}

func (r *stubArticles) Create(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	a.Normalize(models.DefaultAuthor)
	if err := models.ValidateArticle(a); err != nil {
		return err
	}
	r.seq++
	a.ID = fmt.Sprintf("a%d", r.seq)
	a.Touch(time.Now())
	if a.PublishedAt.IsZero() {
		a.PublishedAt = a.CreatedAt
	}
	r.items[a.ID] = *a
	return nil
}

func (r *stubArticles) Update(_ context.Context, id string, p models.ArticlePatch) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if err := models.ValidateArticlePatch(p); err != nil {
		return nil, err
	}
	a, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	p.Apply(&a)
	a.Touch(time.Now())
	r.items[id] = a
	return &a, nil
}

func (r *stubArticles) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubArticles) put(a models.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
}

type stubGallery struct {
	mu        sync.Mutex
	seq       int
	items     map[string]models.GalleryImage
	createErr error
	updateErr error
}

func newStubGallery() *stubGallery { return &stubGallery{items: map[string]models.GalleryImage{}} }

func (r *stubGallery) List(_ context.Context, _ repository.GalleryFilter, _ repository.Page) (repository.ListResult[models.GalleryImage], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out repository.ListResult[models.GalleryImage]
	for _, g := range r.items {
		out.Items = append(out.Items, g)
	}
	out.Total = int64(len(out.Items))
	return out, nil
}

func (r *stubGallery) GetByID(_ context.Context, id string) (*models.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &g, nil
}

func (r *stubGallery) Create(_ context.Context, g *models.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	g.Normalize()
	if err := models.ValidateGalleryImage(g); err != nil {
		return err
	}
	r.seq++
	g.ID = fmt.Sprintf("g%d", r.seq)
	g.Touch(time.Now())
	r.items[g.ID] = *g
	return nil
}

func (r *stubGallery) Update(_ context.Context, id string, p models.GalleryPatch) (*models.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if err := models.ValidateGalleryPatch(p); err != nil {
		return nil, err
	}
	g, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	p.Apply(&g)
	g.Touch(time.Now())
	r.items[id] = g
	return &g, nil
}

func (r *stubGallery) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubGallery) put(g models.GalleryImage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[g.ID] = g
}

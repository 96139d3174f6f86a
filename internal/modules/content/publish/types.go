package publish

import (
	"strings"

	"github.com/jkco/site-core/internal/models"
)

// OrphanPolicy decides what happens to a stored object once its record moves
// to an external URL.
type OrphanPolicy string

const (
	OrphanKeep   OrphanPolicy = "keep"
	OrphanDelete OrphanPolicy = "delete"
)

// Valid reports whether p is a known policy.
func (p OrphanPolicy) Valid() bool { return p == OrphanKeep || p == OrphanDelete }

// ArticleInput is the payload for a new article.
type ArticleInput struct {
	Title    string
	Category string
	Summary  string
	Content  string
	Author   string
	// ImageURL links an external image when no file is uploaded.
	ImageURL    string
	IsPublished *bool
}

func (in ArticleInput) article() *models.Article {
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	return &models.Article{
		Title:       in.Title,
		Category:    models.ArticleCategory(strings.TrimSpace(in.Category)),
		Summary:     in.Summary,
		Content:     in.Content,
		Author:      in.Author,
		IsPublished: published,
	}
}

// ArticlePatchInput carries the fields of an article edit. Nil means "leave
// unchanged"; blank title, category, summary or author are also ignored.
type ArticlePatchInput struct {
	Title       *string
	Category    *string
	Summary     *string
	Content     *string
	Author      *string
	ImageURL    *string
	IsPublished *bool
}

func (in ArticlePatchInput) patch() models.ArticlePatch {
	p := models.ArticlePatch{
		Title:       nonBlank(in.Title),
		Summary:     nonBlank(in.Summary),
		Author:      nonBlank(in.Author),
		Content:     in.Content,
		IsPublished: in.IsPublished,
	}
	if c := nonBlank(in.Category); c != nil {
		cat := models.ArticleCategory(*c)
		p.Category = &cat
	}
	return p
}

// GalleryInput is the payload for a new gallery image.
type GalleryInput struct {
	Title        string
	Description  string
	Category     string
	ImageURL     string
	DisplayOrder int
	IsVisible    *bool
}

func (in GalleryInput) image() *models.GalleryImage {
	visible := true
	if in.IsVisible != nil {
		visible = *in.IsVisible
	}
	return &models.GalleryImage{
		Title:        in.Title,
		Description:  in.Description,
		Category:     models.GalleryCategory(strings.TrimSpace(in.Category)),
		ImageURL:     in.ImageURL,
		DisplayOrder: in.DisplayOrder,
		IsVisible:    visible,
	}
}

// GalleryPatchInput carries the fields of a gallery edit.
type GalleryPatchInput struct {
	Title        *string
	Description  *string
	Category     *string
	ImageURL     *string
	DisplayOrder *int
	IsVisible    *bool
}

func (in GalleryPatchInput) patch() models.GalleryPatch {
	p := models.GalleryPatch{
		Title:        nonBlank(in.Title),
		DisplayOrder: in.DisplayOrder,
		IsVisible:    in.IsVisible,
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		p.Description = &d
	}
	if c := nonBlank(in.Category); c != nil {
		cat := models.GalleryCategory(*c)
		p.Category = &cat
	}
	return p
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

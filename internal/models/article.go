package models

import "time"

// DefaultAuthor is used when an article is created without an author.
const DefaultAuthor = "J KRISHNAN & CO"

// Article is a newsletter entry.
type Article struct {
	Base
	Title       string          `json:"title"       gorm:"size:200;not null"  validate:"required,max=200"`
	Category    ArticleCategory `json:"category"    gorm:"size:32;not null;index" validate:"required,articlecategory"`
	Summary     string          `json:"summary"     gorm:"size:500;not null"  validate:"required,max=500"`
	Content     string          `json:"content"     gorm:"type:longtext"`
	ImageURL    string          `json:"imageUrl"    gorm:"size:2048"`
	MediaID     string          `json:"mediaId,omitempty" gorm:"size:255"`
	Author      string          `json:"author"      gorm:"size:120"          validate:"max=120"`
	IsPublished bool            `json:"isPublished" gorm:"index"`
	PublishedAt time.Time       `json:"publishedAt" gorm:"index"`
}

func (Article) TableName() string { return "articles" }

// Binding reports how the article's featured image is held.
func (a *Article) Binding() MediaBinding {
	switch {
	case a.MediaID != "":
		return StoreManaged
	case a.ImageURL != "":
		return ExternalLinked
	default:
		return NoMedia
	}
}

// FormattedDate renders PublishedAt the way listings display it.
func (a *Article) FormattedDate() string {
	if a.PublishedAt.IsZero() {
		return ""
	}
	return a.PublishedAt.Format("January 2, 2006")
}

// ArticlePatch carries the fields of a partial update; nil fields are left
// unchanged. Setting MediaID to an empty string clears it.
type ArticlePatch struct {
	Title       *string          `validate:"omitnil,min=1,max=200"`
	Category    *ArticleCategory `validate:"omitnil,articlecategory"`
	Summary     *string          `validate:"omitnil,min=1,max=500"`
	Content     *string
	ImageURL    *string
	MediaID     *string
	Author      *string `validate:"omitnil,max=120"`
	IsPublished *bool
}

// Empty reports whether the patch changes nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Category == nil && p.Summary == nil && p.Content == nil &&
		p.ImageURL == nil && p.MediaID == nil && p.Author == nil && p.IsPublished == nil
}

// Apply copies the supplied fields onto a.
func (p ArticlePatch) Apply(a *Article) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Summary != nil {
		a.Summary = *p.Summary
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.MediaID != nil {
		a.MediaID = *p.MediaID
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.IsPublished != nil {
		a.IsPublished = *p.IsPublished
	}
}

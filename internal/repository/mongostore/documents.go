package mongostore

import (
	"time"

	"github.com/jkco/site-core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type articleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Category    string             `bson:"category"`
	Summary     string             `bson:"summary"`
	Content     string             `bson:"content"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	MediaID     string             `bson:"mediaId,omitempty"`
	Author      string             `bson:"author"`
	IsPublished bool               `bson:"isPublished"`
	PublishedAt time.Time          `bson:"publishedAt"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newArticleDoc(a *models.Article) articleDoc {
	return articleDoc{
		Title:       a.Title,
		Category:    string(a.Category),
		Summary:     a.Summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		MediaID:     a.MediaID,
		Author:      a.Author,
		IsPublished: a.IsPublished,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (d articleDoc) model() models.Article {
	return models.Article{
		Base:        models.Base{ID: d.ID.Hex(), CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Title:       d.Title,
		Category:    models.ArticleCategory(d.Category),
		Summary:     d.Summary,
		Content:     d.Content,
		ImageURL:    d.ImageURL,
		MediaID:     d.MediaID,
		Author:      d.Author,
		IsPublished: d.IsPublished,
		PublishedAt: d.PublishedAt,
	}
}

type galleryDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	ImageURL     string             `bson:"imageUrl"`
	MediaID      string             `bson:"mediaId,omitempty"`
	IsExternal   bool               `bson:"isExternal"`
	Category     string             `bson:"category"`
	DisplayOrder int                `bson:"displayOrder"`
	IsVisible    bool               `bson:"isVisible"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func newGalleryDoc(g *models.GalleryImage) galleryDoc {
	return galleryDoc{
		Title:        g.Title,
		Description:  g.Description,
		ImageURL:     g.ImageURL,
		MediaID:      g.MediaID,
		IsExternal:   g.IsExternal,
		Category:     string(g.Category),
		DisplayOrder: g.DisplayOrder,
		IsVisible:    g.IsVisible,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func (d galleryDoc) model() models.GalleryImage {
	return models.GalleryImage{
		Base:         models.Base{ID: d.ID.Hex(), CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Title:        d.Title,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		MediaID:      d.MediaID,
		IsExternal:   d.IsExternal,
		Category:     models.GalleryCategory(d.Category),
		DisplayOrder: d.DisplayOrder,
		IsVisible:    d.IsVisible,
	}
}

// articleUpdate builds the $set/$unset document for a patch. An empty
// MediaID removes the field.
func articleUpdate(p models.ArticlePatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Category != nil {
		set["category"] = string(*p.Category)
	}
	if p.Summary != nil {
		set["summary"] = *p.Summary
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			unset["imageUrl"] = ""
		} else {
			set["imageUrl"] = *p.ImageURL
		}
	}
	if p.MediaID != nil {
		if *p.MediaID == "" {
			unset["mediaId"] = ""
		} else {
			set["mediaId"] = *p.MediaID
		}
	}
	if p.Author != nil {
		set["author"] = *p.Author
	}
	if p.IsPublished != nil {
		set["isPublished"] = *p.IsPublished
	}
	return withUnset(set, unset)
}

func galleryUpdate(p models.GalleryPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.ImageURL != nil {
		set["imageUrl"] = *p.ImageURL
	}
	if p.MediaID != nil {
		if *p.MediaID == "" {
			unset["mediaId"] = ""
		} else {
			set["mediaId"] = *p.MediaID
		}
	}
	if p.IsExternal != nil {
		set["isExternal"] = *p.IsExternal
	}
	if p.Category != nil {
		set["category"] = string(*p.Category)
	}
	if p.DisplayOrder != nil {
		set["displayOrder"] = *p.DisplayOrder
	}
	if p.IsVisible != nil {
		set["isVisible"] = *p.IsVisible
	}
	return withUnset(set, unset)
}

func withUnset(set, unset bson.M) bson.M {
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

package gallery

import (
	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/modules/content/publish"
)

// CreateImageDTO is the request body for a new gallery image, sent either
// alongside a multipart file or as JSON with an imageUrl.
type CreateImageDTO struct {
	Title        string `json:"title"        form:"title"`
	Description  string `json:"description"  form:"description"`
	Category     string `json:"category"     form:"category"`
	ImageURL     string `json:"imageUrl"     form:"imageUrl"`
	DisplayOrder int    `json:"displayOrder" form:"displayOrder"`
	IsVisible    *bool  `json:"isVisible"    form:"isVisible"`
}

func (d CreateImageDTO) input() publish.GalleryInput {
	return publish.GalleryInput{
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		ImageURL:     d.ImageURL,
		DisplayOrder: d.DisplayOrder,
		IsVisible:    d.IsVisible,
	}
}

// UpdateImageDTO is the request body for an edit (all fields optional).
type UpdateImageDTO struct {
	Title        *string `json:"title"        form:"title"`
	Description  *string `json:"description"  form:"description"`
	Category     *string `json:"category"     form:"category"`
	ImageURL     *string `json:"imageUrl"     form:"imageUrl"`
	DisplayOrder *int    `json:"displayOrder" form:"displayOrder"`
	IsVisible    *bool   `json:"isVisible"    form:"isVisible"`
}

func (d UpdateImageDTO) input() publish.GalleryPatchInput {
	return publish.GalleryPatchInput{
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		ImageURL:     d.ImageURL,
		DisplayOrder: d.DisplayOrder,
		IsVisible:    d.IsVisible,
	}
}

// ListQuery holds query params for listing gallery images.
type ListQuery struct {
	Category string `form:"category"`
	Visible  string `form:"visible"`
}

func filterFrom(lq ListQuery) models.GalleryCategory {
	if lq.Category == "" || lq.Category == "all" {
		return ""
	}
	return models.GalleryCategory(lq.Category)
}

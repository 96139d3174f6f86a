package models

// GalleryImage is a picture shown in the site gallery.
type GalleryImage struct {
	Base
	Title        string          `json:"title"        gorm:"size:150;not null" validate:"required,max=150"`
	Description  string          `json:"description"  gorm:"size:500"          validate:"max=500"`
	ImageURL     string          `json:"imageUrl"     gorm:"size:2048;not null" validate:"required"`
	MediaID      string          `json:"mediaId,omitempty" gorm:"size:255"`
	IsExternal   bool            `json:"isExternal"`
	Category     GalleryCategory `json:"category"     gorm:"size:32;not null;index" validate:"required,gallerycategory"`
	DisplayOrder int             `json:"displayOrder" gorm:"index"`
	IsVisible    bool            `json:"isVisible"    gorm:"index"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

// Binding reports how the image is held.
func (g *GalleryImage) Binding() MediaBinding {
	switch {
	case g.MediaID != "":
		return StoreManaged
	case g.ImageURL != "":
		return ExternalLinked
	default:
		return NoMedia
	}
}

// GalleryPatch carries the fields of a partial update; nil fields are left
// unchanged. Setting MediaID to an empty string clears it.
type GalleryPatch struct {
	Title        *string `validate:"omitnil,min=1,max=150"`
	Description  *string `validate:"omitnil,max=500"`
	ImageURL     *string `validate:"omitnil,min=1"`
	MediaID      *string
	IsExternal   *bool
	Category     *GalleryCategory `validate:"omitnil,gallerycategory"`
	DisplayOrder *int
	IsVisible    *bool
}

// Empty reports whether the patch changes nothing.
func (p GalleryPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil && p.MediaID == nil &&
		p.IsExternal == nil && p.Category == nil && p.DisplayOrder == nil && p.IsVisible == nil
}

// Apply copies the supplied fields onto g.
func (p GalleryPatch) Apply(g *GalleryImage) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.ImageURL != nil {
		g.ImageURL = *p.ImageURL
	}
	if p.MediaID != nil {
		g.MediaID = *p.MediaID
	}
	if p.IsExternal != nil {
		g.IsExternal = *p.IsExternal
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.DisplayOrder != nil {
		g.DisplayOrder = *p.DisplayOrder
	}
	if p.IsVisible != nil {
		g.IsVisible = *p.IsVisible
	}
}

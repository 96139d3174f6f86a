package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base holds the identity and system-managed timestamps shared by all entities.
type Base struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Touch stamps creation and modification times for stores that do not
// manage them automatically.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// MediaBinding describes how a record's image is held.
type MediaBinding string

const (
	NoMedia        MediaBinding = "none"
	ExternalLinked MediaBinding = "external"
	StoreManaged   MediaBinding = "store"
)

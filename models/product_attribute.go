package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImageAttribute holds the presentation images for one variant:
// a banner image plus a gallery of additional shots.
type ProductImageAttribute struct {
	ID               string          `gorm:"primaryKey" json:"id"`
	ImageBanner      string          `gorm:"not null" json:"image_banner"`
	ImageGallery     []string        `gorm:"serializer:json" json:"image_gallery"`
	ProductVariantID string          `gorm:"not null;index" json:"product_variant_id"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (a *ProductImageAttribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

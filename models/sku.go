package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SKU is the smallest purchasable unit. Stock is the contended resource:
// the check constraint backs up the relative decrement done at checkout, so
// the column can never be driven below zero even by a racing writer.
type SKU struct {
	ID               string          `gorm:"primaryKey" json:"id"`
	SKUCode          string          `gorm:"column:sku_code;uniqueIndex;not null" json:"sku_code"`
	Price            float64         `gorm:"not null" json:"price"`
	Stock            int             `gorm:"not null;check:stock >= 0" json:"stock"`
	ProductID        string          `gorm:"not null;index" json:"product_id"`
	Product          *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductVariantID string          `gorm:"not null;index" json:"product_variant_id"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"product_variant,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (s *SKU) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

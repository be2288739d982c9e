package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // created by checkout, awaiting fulfillment
	OrderStatusPaid      OrderStatus = "PAID"      // payment confirmed by an external process
	OrderStatusShipped   OrderStatus = "SHIPPED"   // out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // customer received the items
	OrderStatusCancelled OrderStatus = "CANCELLED" // cancelled before shipping
)

// Order is the durable record of one successful checkout. Items are
// immutable snapshots; only Status may change afterwards, by fulfillment.
type Order struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	UserID      string      `gorm:"not null;index" json:"user_id"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Address     string      `gorm:"not null" json:"address"`
	Phone       string      `gorm:"not null" json:"phone"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem snapshots the SKU, quantity and price at time of purchase,
// independent of later SKU price changes.
type OrderItem struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	OrderID  string  `gorm:"not null;index" json:"order_id"`
	SKUID    string  `gorm:"column:sku_id;not null" json:"sku_id"`
	SKU      *SKU    `gorm:"foreignKey:SKUID" json:"sku,omitempty"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

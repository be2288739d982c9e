package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role           Role      `gorm:"type:VARCHAR(10);default:'USER'" json:"role"`
	Phone          string    `gorm:"not null" json:"phone"`
	SecondaryPhone string    `json:"secondary_phone,omitempty"`
	Address        string    `gorm:"not null" json:"address"`
	Cart           *Cart     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders         []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

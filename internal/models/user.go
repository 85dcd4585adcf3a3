package models

import (
	"time"
)

// User is an account that can own recipes. PasswordHash never leaves the server.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE;" json:"profile,omitempty"`
}

// Profile holds optional display information, one per user.
type Profile struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"-"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

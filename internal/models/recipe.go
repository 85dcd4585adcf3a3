package models

import (
	"time"
)

// Recipe is a user-owned recipe. Rows are hard deleted and go away with their author.
type Recipe struct {
	ID           uint             `gorm:"primarykey"`
	CreatedAt    time.Time        `gorm:"index"`
	UpdatedAt    time.Time
	Title        string           `gorm:"size:100;not null"`
	Description  string           `gorm:"type:text;not null"`
	PrepTime     int              `gorm:"not null"`
	CookTime     int              `gorm:"not null"`
	ImageURL     string           `gorm:"size:200;not null"`
	Tags         JSONBStringArray `gorm:"not null"`
	Ingredients  JSONObjectList   `gorm:"not null"`
	Instructions JSONObjectList   `gorm:"not null"`
	AuthorID     uint             `gorm:"not null;index"`
	Author       User             `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// All returns every model managed by the store in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Recipe{},
		&Comment{},
		&RecipeLike{},
	}
}

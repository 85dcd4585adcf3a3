package models

import (
	"time"
)

// Comment is a note left on a recipe. It goes away with the recipe or its author.
type Comment struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Text      string `gorm:"type:text;not null"`
	RecipeID  uint   `gorm:"not null;index"`
	Recipe    Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}

// RecipeLike records that a user likes a recipe. A user likes a recipe at most once.
type RecipeLike struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	RecipeID  uint   `gorm:"not null;uniqueIndex:idx_recipe_likes_recipe_user"`
	Recipe    Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_recipe_likes_recipe_user;index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}

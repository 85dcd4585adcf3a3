package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// LikeService records which users like which recipes
type LikeService struct {
	db *gorm.DB
}

// NewLikeService creates a new LikeService instance
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// LikeStatus reports how many users like a recipe and whether userID is one of them
func (s *LikeService) LikeStatus(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error) {
	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}
	return likeStatus(db, userID, recipeID)
}

// Like adds userID to the likers of a recipe. Liking twice is rejected.
func (s *LikeService) Like(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error) {
	var status *types.LikeStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}
		result := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&models.RecipeLike{RecipeID: recipeID, UserID: userID})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return FieldError(schema.NonFieldErrors, "Recipe already liked.")
		}

		var err error
		status, err = likeStatus(tx, userID, recipeID)
		return err
	})
	if err != nil {
		return nil, likeError(err)
	}
	return status, nil
}

// Unlike removes userID from the likers of a recipe. Unliking a recipe that was not
// liked is rejected.
func (s *LikeService) Unlike(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error) {
	var status *types.LikeStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}
		result := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Delete(&models.RecipeLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return FieldError(schema.NonFieldErrors, "Recipe has not yet been liked.")
		}

		var err error
		status, err = likeStatus(tx, userID, recipeID)
		return err
	})
	if err != nil {
		return nil, likeError(err)
	}
	return status, nil
}

func likeStatus(db *gorm.DB, userID, recipeID uint) (*types.LikeStatus, error) {
	status := types.LikeStatus{Recipe: recipeID}
	if err := db.Model(&models.RecipeLike{}).Where("recipe_id = ?", recipeID).Count(&status.Likes).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	var mine int64
	if err := db.Model(&models.RecipeLike{}).Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&mine).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	status.Liked = mine > 0
	return &status, nil
}

func likeError(err error) error {
	var verr *ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &verr) {
		return err
	}
	return fmt.Errorf("failed to update like: %w", err)
}

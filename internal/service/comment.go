package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/models"
)

const maxCommentLength = 2000

// CommentService handles comments on recipes
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService instance
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListComments returns the comments of a recipe, newest first
func (s *CommentService) ListComments(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CreateComment stores text as a comment by userID on any existing recipe
func (s *CommentService) CreateComment(ctx context.Context, userID, recipeID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return nil, FieldError("text", "This field may not be blank.")
	case utf8.RuneCountInString(text) > maxCommentLength:
		return nil, FieldError("text", fmt.Sprintf("Ensure this field has no more than %d characters.", maxCommentLength))
	}

	db := s.db.WithContext(ctx)
	if err := recipeExists(db, recipeID); err != nil {
		return nil, err
	}

	comment := models.Comment{Text: text, RecipeID: recipeID, UserID: userID}
	if err := db.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	if err := db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

// DeleteComment removes a comment written by callerID. Comments by other users are
// reported as not found.
func (s *CommentService) DeleteComment(ctx context.Context, callerID, id uint) error {
	result := s.db.WithContext(ctx).Where("user_id = ?", callerID).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// recipeExists returns ErrNotFound unless a recipe with id is stored
func recipeExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up recipe: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ownedBy restricts a query to recipes authored by userID. Rows outside the scope are
// reported as not found, so a foreign recipe is indistinguishable from a missing one.
func ownedBy(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", userID)
	}
}

// ListRecipes returns every recipe, newest first
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves any recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Author").First(&recipe, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// CreateRecipe stores a new recipe owned by authorID. The input must carry every
// required field.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uint, in *types.RecipeInput) (*models.Recipe, error) {
	if verr := requireRecipeFields(in); verr.HasErrors() {
		return nil, verr
	}

	recipe := models.Recipe{AuthorID: authorID}
	in.ApplyTo(&recipe)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe applies the present fields of in to a recipe owned by callerID. When
// full is set the input must carry every required field.
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID, id uint, in *types.RecipeInput, full bool) (*models.Recipe, error) {
	if full {
		if verr := requireRecipeFields(in); verr.HasErrors() {
			return nil, verr
		}
	}

	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(ownedBy(callerID)).Preload("Author").First(&recipe, id).Error; err != nil {
			return notFound(err)
		}
		in.ApplyTo(&recipe)
		return tx.Omit(clause.Associations).Save(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe permanently removes a recipe owned by callerID
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id uint) error {
	result := s.db.WithContext(ctx).Scopes(ownedBy(callerID)).Delete(&models.Recipe{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func requireRecipeFields(in *types.RecipeInput) *ValidationError {
	verr := NewValidationError()
	const msg = "This field is required."
	if in.Title == nil {
		verr.Add("title", msg)
	}
	if in.Description == nil {
		verr.Add("description", msg)
	}
	if in.PrepTime == nil {
		verr.Add("prep_time", msg)
	}
	if in.CookTime == nil {
		verr.Add("cook_time", msg)
	}
	if in.ImageURL == nil {
		verr.Add("image_url", msg)
	}
	if in.Ingredients == nil {
		verr.Add("ingredients", msg)
	}
	if in.Instructions == nil {
		verr.Add("instructions", msg)
	}
	return verr
}

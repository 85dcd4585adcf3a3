package service

import (
	"context"
	"io"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	IssueTokens(user *models.User) (*types.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user and profile operations
type IProfileService interface {
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, callerID, userID uint, in *types.ProfileInput) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, authorID uint, in *types.RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, callerID, id uint, in *types.RecipeInput, full bool) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, callerID, id uint) error
}

// ICommentService defines the interface for recipe comments
type ICommentService interface {
	ListComments(ctx context.Context, recipeID uint) ([]models.Comment, error)
	CreateComment(ctx context.Context, userID, recipeID uint, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, callerID, id uint) error
}

// ILikeService defines the interface for recipe likes
type ILikeService interface {
	LikeStatus(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error)
	Like(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error)
	Unlike(ctx context.Context, userID, recipeID uint) (*types.LikeStatus, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, userID uint, filename, contentType string, size int64, body io.Reader) (string, error)
}

var (
	_ IAuthService    = (*AuthService)(nil)
	_ IProfileService = (*ProfileService)(nil)
	_ IRecipeService  = (*RecipeService)(nil)
	_ ICommentService = (*CommentService)(nil)
	_ ILikeService    = (*LikeService)(nil)
	_ IImageService   = (*ImageService)(nil)
)

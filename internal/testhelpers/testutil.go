package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// TestJWTSecret signs every token issued in tests
const TestJWTSecret = "test-jwt-secret-that-is-long-enough-for-hs256"

// TestPassword is the password of users created by CreateTestUser
const TestPassword = "testpassword123"

// TestDatabase represents a test database with the services built on it
type TestDatabase struct {
	*gorm.DB
	AuthService *service.AuthService
}

// NewTestDatabase returns an in-memory database and an AuthService bound to it
func NewTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	db := SetupTestDB(t)
	return &TestDatabase{
		DB:          db,
		AuthService: NewTestAuthService(db),
	}
}

// NewTestAuthService returns an AuthService using TestJWTSecret
func NewTestAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(db, TestJWTSecret, 30*time.Minute, 24*time.Hour)
}

// CreateTestUser registers a user with a unique username and TestPassword
func CreateTestUser(t *testing.T, db *TestDatabase) *models.User {
	t.Helper()
	username := fmt.Sprintf("user_%s", uuid.NewString()[:8])
	user, err := db.AuthService.Register(context.Background(), username, TestPassword)
	require.NoError(t, err)
	return user
}

// CreateTestUserAndToken creates a test user and returns it with a valid access token
func CreateTestUserAndToken(t *testing.T, db *TestDatabase) (*models.User, string) {
	t.Helper()
	user := CreateTestUser(t, db)
	tokens, err := db.AuthService.IssueTokens(user)
	require.NoError(t, err)
	return user, tokens.Access
}

// CreateTestRecipe inserts a recipe owned by authorID
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:       title,
		Description: "A test recipe",
		PrepTime:    5,
		CookTime:    10,
		ImageURL:    "https://img.example.com/test.jpg",
		Tags:        models.JSONBStringArray{"test"},
		Ingredients: models.JSONObjectList{
			{"name": "egg", "qty": float64(2)},
		},
		Instructions: models.JSONObjectList{
			{"step": float64(1), "text": "Crack the eggs"},
		},
		AuthorID: authorID,
	}
	require.NoError(t, db.Omit("Author").Create(recipe).Error)
	return recipe
}

package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/models"
)

func TestDatabaseSetup(t *testing.T) {
	db := NewTestDatabase(t)

	user, token := CreateTestUserAndToken(t, db)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.Profile)
	assert.Equal(t, user.ID, user.Profile.UserID)

	recipe := CreateTestRecipe(t, db.DB, user.ID, "Omelette")
	assert.NotZero(t, recipe.ID)

	var stored models.Recipe
	require.NoError(t, db.Preload("Author").First(&stored, recipe.ID).Error)
	assert.Equal(t, user.Username, stored.Author.Username)
	assert.Equal(t, recipe.Ingredients, stored.Ingredients)
}

func TestDatabasesAreIsolated(t *testing.T) {
	first := NewTestDatabase(t)
	second := NewTestDatabase(t)

	CreateTestUser(t, first)

	var count int64
	require.NoError(t, second.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostgresDatabaseSetup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := SetupPostgresDB(t)

	user := &models.User{Username: "pg_user", PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)

	recipe := CreateTestRecipe(t, db, user.ID, "Soup")
	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Equal(t, recipe.Tags, stored.Tags)
	assert.Equal(t, recipe.Instructions, stored.Instructions)
}

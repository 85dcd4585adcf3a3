package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/models"
)

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		Environment: config.Test,
		DBDriver:    "sqlite",
		SQLitePath:  filepath.Join(t.TempDir(), "recipes.db"),
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	assert.NoError(t, database.HealthCheck(context.Background(), db))

	// foreign keys are enforced, so deleting a user removes its rows
	user := models.User{Username: "cook", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID}).Error)
	recipe := models.Recipe{
		Title:        "Toast",
		Description:  "Bread, heated",
		ImageURL:     "https://img.example.com/toast.jpg",
		Tags:         models.JSONBStringArray{},
		Ingredients:  models.JSONObjectList{{"name": "bread"}},
		Instructions: models.JSONObjectList{{"step": float64(1)}},
		AuthorID:     user.ID,
	}
	require.NoError(t, db.Omit("Author").Create(&recipe).Error)

	require.NoError(t, db.Delete(&user).Error)

	var recipes, profiles int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, profiles)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestSQLiteDSN(t *testing.T) {
	dsn := database.SQLiteDSN("/tmp/x.db")
	assert.Contains(t, dsn, "file:/tmp/x.db")
	assert.Contains(t, dsn, "_foreign_keys=1")
}

func TestHealthCheckClosedDatabase(t *testing.T) {
	db, err := database.New(&config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "closed.db"),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Error(t, database.HealthCheck(context.Background(), db))
}

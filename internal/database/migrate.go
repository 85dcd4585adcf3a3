package database

import (
	"fmt"

	"gorm.io/gorm"

	applog "github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/models"
)

// AutoMigrate creates or updates the schema from the gorm models. It backs sqlite
// databases and tests; postgres deployments run the SQL migrations in cmd/migrate.
func AutoMigrate(db *gorm.DB) error {
	applog.Default().WithField("dialect", db.Dialector.Name()).Info("Running gorm auto-migration")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

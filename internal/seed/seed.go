// Package seed fills a development database with demo users and recipes. Every
// step goes through the services and can be rerun safely.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	applog "github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// DemoPassword is the password of every seeded user
const DemoPassword = "testpassword123"

// DemoUser describes a seeded account and its profile
type DemoUser struct {
	Username    string
	DisplayName string
	Bio         string
}

// DemoUsers are created by Users
var DemoUsers = []DemoUser{
	{Username: "johndoe", DisplayName: "John Doe", Bio: "Weeknight cook, weekend baker."},
	{Username: "janesmith", DisplayName: "Jane Smith", Bio: "Mostly soups."},
	{Username: "chef.mario", DisplayName: "Mario", Bio: "Pasta, always pasta."},
}

// Seeder creates demo data through the services
type Seeder struct {
	db       *gorm.DB
	auth     service.IAuthService
	profiles service.IProfileService
	recipes  service.IRecipeService
}

func NewSeeder(db *gorm.DB, auth service.IAuthService, profiles service.IProfileService, recipes service.IRecipeService) *Seeder {
	return &Seeder{db: db, auth: auth, profiles: profiles, recipes: recipes}
}

// Users registers every demo user that does not exist yet and returns all of them
func (s *Seeder) Users(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(DemoUsers))
	for _, demo := range DemoUsers {
		user, err := s.ensureUser(ctx, demo)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) ensureUser(ctx context.Context, demo DemoUser) (*models.User, error) {
	log := applog.FromContext(ctx).WithField("username", demo.Username)

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", demo.Username).First(&existing).Error
	if err == nil {
		log.Debug("Demo user already exists")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up %s: %w", demo.Username, err)
	}

	user, err := s.auth.Register(ctx, demo.Username, DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", demo.Username, err)
	}
	if _, err := s.profiles.UpdateProfile(ctx, user.ID, user.ID, &types.ProfileInput{
		DisplayName: &demo.DisplayName,
		Bio:         &demo.Bio,
	}); err != nil {
		return nil, fmt.Errorf("failed to set profile for %s: %w", demo.Username, err)
	}

	log.Info("Created demo user")
	return user, nil
}

// Recipes gives every user the demo recipes they do not own yet, matched by title.
// It returns how many recipes were created.
func (s *Seeder) Recipes(ctx context.Context, users []*models.User) (int, error) {
	created := 0
	if len(users) == 0 {
		return 0, nil
	}
	for i, user := range users {
		for j, demo := range demoRecipes {
			// spread the catalogue across users
			if (i+j)%len(users) != 0 {
				continue
			}

			var count int64
			if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
				Where("author_id = ? AND title = ?", user.ID, demo.Title).
				Count(&count).Error; err != nil {
				return created, fmt.Errorf("failed to check recipe %q: %w", demo.Title, err)
			}
			if count > 0 {
				continue
			}

			recipe, err := s.recipes.CreateRecipe(ctx, user.ID, demo.input())
			if err != nil {
				return created, fmt.Errorf("failed to create recipe %q: %w", demo.Title, err)
			}
			applog.FromContext(ctx).WithFields(logrus.Fields{
				"recipe_id": recipe.ID,
				"author":    user.Username,
			}).Info("Created demo recipe")
			created++
		}
	}
	return created, nil
}

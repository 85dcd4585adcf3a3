package main

import (
	"context"
	"fmt"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/seed"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Default().WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)

	db, err := database.New(cfg)
	if err != nil {
		logger.Default().WithError(err).Fatal("Failed to connect to database")
	}

	seeder := seed.NewSeeder(db,
		service.NewAuthService(db, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		service.NewProfileService(db),
		service.NewRecipeService(db),
	)
	users, err := seeder.Users(context.Background())
	if err != nil {
		logger.Default().WithError(err).Fatal("Failed to seed users")
	}

	fmt.Println("Test users (password: " + seed.DemoPassword + "):")
	for _, u := range users {
		fmt.Printf("  %d\t%s\n", u.ID, u.Username)
	}
}

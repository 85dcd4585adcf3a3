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
	log := logger.Default()
	ctx := context.Background()

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if cfg.DBDriver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			log.WithError(err).Fatal("Failed to migrate database")
		}
	}

	seeder := seed.NewSeeder(db,
		service.NewAuthService(db, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		service.NewProfileService(db),
		service.NewRecipeService(db),
	)

	users, err := seeder.Users(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed users")
	}
	created, err := seeder.Recipes(ctx, users)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed recipes")
	}
	fmt.Printf("Seeded %d users and %d new recipes\n", len(users), created)
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/database/migrations"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	backfill := flag.Bool("backfill", false, "Create missing user profiles through the ORM")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Default().WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)
	log := logger.Default()
	ctx := context.Background()

	if *backfill {
		db, err := database.New(cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		created, err := service.NewProfileService(db).BackfillProfiles(ctx)
		if err != nil {
			log.WithError(err).Fatal("Profile backfill failed")
		}
		fmt.Printf("Created %d missing profiles\n", created)
		return
	}

	if cfg.DBDriver != "postgres" {
		log.WithField("driver", cfg.DBDriver).Fatal("SQL migrations only target postgres; sqlite is auto-migrated by the api")
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if *rollback {
		name, err := migrations.Rollback(ctx, db)
		if errors.Is(err, migrations.ErrNothingToRollback) {
			fmt.Println("No migrations to rollback")
			return
		}
		if err != nil {
			log.WithError(err).Fatal("Rollback failed")
		}
		fmt.Printf("Successfully rolled back migration: %s\n", name)
		return
	}

	applied, err := migrations.Up(ctx, db)
	for _, name := range applied {
		fmt.Printf("Applied migration: %s\n", name)
	}
	if err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
	if len(applied) == 0 {
		fmt.Println("Database is up to date")
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/server"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Default().WithError(err).Fatal("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)
	log := logger.Default().WithField("env", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	// postgres deployments are migrated by cmd/migrate
	if cfg.DBDriver == "sqlite" || cfg.Environment == config.Development {
		if err := database.AutoMigrate(db); err != nil {
			log.WithError(err).Fatal("Failed to migrate database")
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	validator, err := schema.NewValidator()
	if err != nil {
		log.WithError(err).Fatal("Failed to load recipe schemas")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := router.Dependencies{
		DB:              db,
		AuthService:     authService,
		RecipeService:   service.NewRecipeService(db),
		ProfileService:  service.NewProfileService(db),
		CommentService:  service.NewCommentService(db),
		LikeService:     service.NewLikeService(db),
		Validator:       validator,
		Registry:        registry,
		CORSOrigins:     cfg.AllowedOrigins(),
		RecipeCreateRPH: cfg.RecipeCreateRPH,
		RecipeModifyRPH: cfg.RecipeModifyRPH,
	}

	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()
		deps.Redis = redisClient
	} else {
		log.Warn("Redis not configured, recipe rate limiting disabled")
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure S3")
	}
	if s3Config != nil {
		deps.ImageService = service.NewImageService(s3Config)
	} else {
		log.Warn("S3_BUCKET_NAME not set, image uploads disabled")
	}

	srv := server.New(cfg, router.SetupRouter(deps))
	log.WithField("addr", cfg.Addr()).Info("Starting server")
	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Fatal("Server error")
	}
	log.Info("Server stopped")
}

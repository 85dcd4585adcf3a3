package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minProductionSecretLen = 32

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "") {
			add("DATABASE_URL", "DATABASE_URL or DB_HOST, DB_USER and DB_NAME are required")
		}
		if cfg.DatabaseURL != "" {
			if _, err := url.Parse(cfg.DatabaseURL); err != nil {
				add("DATABASE_URL", "is not a valid URL")
			}
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required (environment variable or jwt_secret secret)")
	}
	if cfg.Environment == Production {
		if len(cfg.JWTSecret) < minProductionSecretLen || cfg.JWTSecret == developmentJWTSecret {
			add("JWT_SECRET", fmt.Sprintf("must be at least %d characters in production", minProductionSecretLen))
		}
		if cfg.DBDriver == "sqlite" {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
	}

	if cfg.AccessTokenTTL <= 0 {
		add("ACCESS_TOKEN_TTL", "must be positive")
	}
	if cfg.RefreshTokenTTL < cfg.AccessTokenTTL {
		add("REFRESH_TOKEN_TTL", "must not be shorter than ACCESS_TOKEN_TTL")
	}
	if cfg.RedisEnabled() && (cfg.RecipeCreateRPH <= 0 || cfg.RecipeModifyRPH <= 0) {
		add("RATE_LIMIT_*", "limits must be positive when Redis is configured")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

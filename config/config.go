package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const developmentJWTSecret = "development-only-insecure-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort      string        `env:"SERVER_PORT,default=8000"`
	ServerHost      string        `env:"SERVER_HOST,default=0.0.0.0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	CORSOrigins     string        `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`

	// Database configuration. DatabaseURL wins over the individual fields.
	DBDriver    string `env:"DB_DRIVER,default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST,default=localhost"`
	DBPort      string `env:"DB_PORT,default=5432"`
	DBUser      string `env:"DB_USER,default=postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME,default=recipeshare"`
	DBSSLMode   string `env:"DB_SSL_MODE,default=disable"`
	SQLitePath  string `env:"SQLITE_PATH,default=recipeshare.db"`

	// Redis configuration, only used for rate limiting
	RedisURL        string `env:"REDIS_URL"`
	RedisHost       string `env:"REDIS_HOST"`
	RedisPort       string `env:"REDIS_PORT,default=6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB,default=0"`
	RecipeCreateRPH int    `env:"RATE_LIMIT_RECIPE_CREATE,default=20"`
	RecipeModifyRPH int    `env:"RATE_LIMIT_RECIPE_MODIFY,default=30"`

	// JWT configuration
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,default=30m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL,default=24h"`

	// Image storage
	S3Bucket        string `env:"S3_BUCKET_NAME"`
	AWSRegion       string `env:"AWS_REGION,default=us-east-1"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// LoadConfig creates a new Config from the environment, an optional .env file and
// Docker secrets.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// .env is a development convenience; production values come from the environment
	if env == Development || env == Test {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{Environment: env}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	loadSecrets(cfg)

	if cfg.JWTSecret == "" && (env == Development || env == Test) {
		cfg.JWTSecret = developmentJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadSecrets fills sensitive values that were not set in the environment from
// Docker secrets.
func loadSecrets(cfg *Config) {
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = readSecret("jwt_secret")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RedisEnabled reports whether a Redis server was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" envDefault:"development"`

	// HTTP
	HTTPHost       string        `env:"HTTP_HOST" envDefault:"127.0.0.1"`
	HTTPPort       int           `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`

	// Database
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"` // "postgres" or "sqlite"
	DatabaseURL string `env:"DATABASE_URL" envDefault:"gamereviews.db"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"1"`

	// Authentication
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`

	// Login/register throttling per client IP
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST" envDefault:"10"`

	// Redis stats cache, disabled when REDIS_URL is empty
	RedisURL      string        `env:"REDIS_URL"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"5m"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig loads configuration from a .env file (if present) and environment variables
func LoadConfig() (*Config, error) {
	// a missing .env is fine, the process env is still read
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	validDrivers := []string{"postgres", "sqlite"}
	if !slices.Contains(validDrivers, c.DBDriver) {
		errs = append(errs, fmt.Sprintf("DB_DRIVER must be one of: %s", strings.Join(validDrivers, ", ")))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL must not be empty")
	}
	if c.DBMinConns > c.DBMaxConns {
		errs = append(errs, "DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if c.AccessTokenTTL <= 0 {
		errs = append(errs, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT must be positive")
	}
	if c.LoginRateLimit <= 0 || c.LoginRateBurst < 1 {
		errs = append(errs, "LOGIN_RATE_LIMIT and LOGIN_RATE_BURST must be positive")
	}

	// short secrets are tolerated for local development only
	if !c.IsDevelopment() && len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// HTTPAddr returns the listen address of the API server
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// StatsCacheEnabled reports whether a Redis URL was configured
func (c *Config) StatsCacheEnabled() bool {
	return c.RedisURL != ""
}

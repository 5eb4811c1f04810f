package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Default secrets used in dev mode only
const (
	DevAccessSecret  = "dev-access-secret"
	DevRefreshSecret = "dev-refresh-secret"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string `env:"APP_MODE" envDefault:"dev"`
	Port           string `env:"PORT" envDefault:"3000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	BcryptCost     int    `env:"BCRYPT_COST" envDefault:"12"`

	Database DatabaseConfig `envPrefix:"DB_"`
	JWT      JWTConfig
	Cookie   CookieConfig  `envPrefix:"COOKIE_"`
	Session  SessionConfig `envPrefix:"SESSION_"`
	Seed     SeedConfig    `envPrefix:"SEED_ADMIN_"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `env:"DRIVER" envDefault:"mysql"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASS"`
	Name     string `env:"NAME" envDefault:"hrdocs"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	// Path is the database file for the sqlite driver
	Path string `env:"PATH" envDefault:"hrdocs.db"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string `env:"JWT_SECRET"`
	RefreshSecret    string `env:"JWT_REFRESH_SECRET"`
	AccessTokenMins  int    `env:"ACCESS_TOKEN_MINUTES" envDefault:"15"`
	RefreshTokenDays int    `env:"REFRESH_TOKEN_DAYS" envDefault:"7"`
}

// AccessTTL returns the access token lifetime
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenMins) * time.Minute
}

// RefreshTTL returns the refresh token lifetime
func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTokenDays) * 24 * time.Hour
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool   `env:"SECURE" envDefault:"false"`
	SameSite string `env:"SAMESITE" envDefault:"lax"`
	Domain   string `env:"DOMAIN"`
}

// SessionConfig holds refresh session retention settings
type SessionConfig struct {
	RetentionDays int    `env:"RETENTION_DAYS" envDefault:"30"`
	CleanupCron   string `env:"CLEANUP_CRON" envDefault:"@daily"`
}

// Retention returns how long revoked or expired sessions are kept
func (s SessionConfig) Retention() time.Duration {
	return time.Duration(s.RetentionDays) * 24 * time.Hour
}

// SeedConfig holds the initial admin account created in dev mode
type SeedConfig struct {
	Email    string `env:"EMAIL" envDefault:"admin@hrdocs.local"`
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin123456"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using environment variables")
	}

	config, err := Parse()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", config.AppMode)
	return config, nil
}

// Parse builds the configuration from environment variables only
func Parse() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	// Trim spaces for Windows compatibility
	config.AppMode = strings.TrimSpace(config.AppMode)
	if config.AppMode != "dev" && config.AppMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", config.AppMode)
	}

	if err := config.validateJWT(); err != nil {
		return nil, err
	}

	switch config.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql', 'postgres' or 'sqlite')", config.Database.Driver)
	}

	if config.BcryptCost < 4 || config.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	if config.Session.RetentionDays < 0 {
		return nil, fmt.Errorf("SESSION_RETENTION_DAYS must not be negative")
	}

	return config, nil
}

// validateJWT fills dev defaults and rejects unsafe secrets in prod
func (c *Config) validateJWT() error {
	if c.IsDev() {
		if c.JWT.Secret == "" {
			c.JWT.Secret = DevAccessSecret
		}
		if c.JWT.RefreshSecret == "" {
			c.JWT.RefreshSecret = DevRefreshSecret
		}
	}

	if c.JWT.Secret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("JWT_SECRET and JWT_REFRESH_SECRET are required in prod mode")
	}
	if c.JWT.Secret == c.JWT.RefreshSecret {
		if c.IsProd() {
			return errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
		}
		log.Println("⚠️ JWT_SECRET equals JWT_REFRESH_SECRET, use distinct secrets outside dev")
	}

	if c.JWT.AccessTokenMins <= 0 || c.JWT.RefreshTokenDays <= 0 {
		return errors.New("ACCESS_TOKEN_MINUTES and REFRESH_TOKEN_DAYS must be positive")
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS.
// An empty result in prod means cross-origin requests are not allowed.
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" && c.IsDev() {
		return "*"
	}
	return c.AllowedOrigins
}

package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// MinBcryptCost is the lowest work factor accepted for password hashes.
const MinBcryptCost = 12

type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppPort string `envconfig:"APP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	SessionSecret    string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionMaxAge    time.Duration `envconfig:"SESSION_MAX_AGE" default:"24h"`
	SessionUpdateAge time.Duration `envconfig:"SESSION_UPDATE_AGE" default:"1h"`
	CookieName       string        `envconfig:"SESSION_COOKIE_NAME" default:"session_token"`
	BcryptCost       int           `envconfig:"BCRYPT_COST" default:"12"`

	CORSOrigin        string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	InternalSecretKey string `envconfig:"INTERNAL_SECRET_KEY"`

	// Behaviour switches for the open product questions, see DESIGN.md.
	OpenRoleRegistration bool `envconfig:"OPEN_ROLE_REGISTRATION" default:"false"`
	BookingTransitions   bool `envconfig:"BOOKING_TRANSITIONS" default:"false"`
	AdminForbiddenStatus int  `envconfig:"ADMIN_FORBIDDEN_STATUS" default:"403"`

	// Bootstrap account created by cmd/seed.
	AdminName     string `envconfig:"ADMIN_NAME" default:"Administrator"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.DBHost == "" || cfg.SessionSecret == "" {
		return nil, fmt.Errorf("load config: DB_HOST and SESSION_SECRET must not be empty")
	}
	if cfg.BcryptCost < MinBcryptCost {
		cfg.BcryptCost = MinBcryptCost
	}
	if cfg.SessionUpdateAge <= 0 || cfg.SessionUpdateAge > cfg.SessionMaxAge {
		return nil, fmt.Errorf("load config: SESSION_UPDATE_AGE must be within (0, %s]", cfg.SessionMaxAge)
	}
	if cfg.AdminForbiddenStatus != 401 && cfg.AdminForbiddenStatus != 403 {
		return nil, fmt.Errorf("load config: ADMIN_FORBIDDEN_STATUS must be 401 or 403")
	}

	return &cfg, nil
}

// LoadConfig is Load for entrypoints: any error is fatal.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

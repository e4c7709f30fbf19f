package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/gofinances/internal/database"
)

var ErrMissingSecret = errors.New("AUTH_SECRET is required")

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"GoFinances"`
		Port int    `envconfig:"PORT" default:"8080"`
		// IANA zone used for month boundaries and displayed dates.
		Location string `envconfig:"APP_LOCATION" default:"Local"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
		Path     string `envconfig:"DB_PATH" default:"./data/gofinances.db"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"gofinances"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Storage struct {
		// Prepended to every per-user storage key.
		Namespace string `envconfig:"STORAGE_NAMESPACE" default:"@gofinances:"`
	}

	Categories struct {
		File string `envconfig:"CATEGORIES_FILE"`
	}

	Auth struct {
		Secret     string        `envconfig:"AUTH_SECRET"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
		Credential string        `envconfig:"AUTH_CREDENTIAL"`
		UserID     string        `envconfig:"AUTH_USER_ID" default:"123"`
		UserName   string        `envconfig:"AUTH_USER_NAME" default:"William"`
		UserEmail  string        `envconfig:"AUTH_USER_EMAIL" default:"william@gofinances.dev"`
		UserPhoto  string        `envconfig:"AUTH_USER_PHOTO"`
	}
}

// DataSource returns the driver name and DSN for the configured database.
func (c *Config) DataSource() (string, string) {
	if c.DB.Driver == database.DriverPostgres {
		return database.DriverPostgres, fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}

	return database.DriverSQLite, c.DB.Path
}

// Location resolves APP_LOCATION.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_LOCATION %q: %w", c.App.Location, err)
	}

	return loc, nil
}

// RequireSecret fails when no token signing secret is configured.
// Only the API signs tokens, so Load does not enforce it.
func (c *Config) RequireSecret() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DB.Driver != database.DriverSQLite && cfg.DB.Driver != database.DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

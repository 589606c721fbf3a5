package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Admin authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Public site configuration
	Site SiteConfig `yaml:"site"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// DatabaseConfig holds database connection settings.
// An empty URL puts the whole application in fallback mode.
type DatabaseConfig struct {
	URL            string        `yaml:"-" env:"DATABASE_URL"`
	MaxOpenConns   int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns   int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxLifetime    time.Duration `yaml:"max_lifetime" env:"DB_MAX_LIFETIME" env-default:"5m"`
	MigrationsPath string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	AutoMigrate    bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
}

// AuthConfig holds admin credential and session settings
type AuthConfig struct {
	AdminEmail    string        `yaml:"admin_email" env:"ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminPassword string        `yaml:"-" env:"ADMIN_PASSWORD"`
	AdminName     string        `yaml:"admin_name" env:"ADMIN_NAME" env-default:"Site Admin"`
	SessionSecret string        `yaml:"-" env:"SESSION_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"24h"`
	SecureCookies bool          `yaml:"secure_cookies" env:"AUTH_SECURE_COOKIES" env-default:"true"`
}

// SiteConfig holds settings for the public pages
type SiteConfig struct {
	URL          string `yaml:"url" env:"SITE_URL" env-default:"http://localhost:8080"`
	Name         string `yaml:"name" env:"SITE_NAME" env-default:"Portfolio"`
	Author       string `yaml:"author" env:"SITE_AUTHOR" env-default:"Site Admin"`
	StrictParams bool   `yaml:"strict_params" env:"SITE_STRICT_PARAMS" env-default:"false"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"` // "json" or "pretty"
}

// Load reads configuration from environment variables. When CONFIG_PATH points
// at a YAML file it is read first and environment variables override it.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read loads configuration like Load but skips validation. Tools that only
// need the database settings use it.
func Read() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if len(c.Auth.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive")
	}
	if c.Site.URL == "" {
		return fmt.Errorf("SITE_URL is required")
	}
	return nil
}

// Enabled reports whether a backing store is configured
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

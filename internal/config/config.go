// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Timeouts  TimeoutConfig
	Logging   LoggingConfig
	App       AppConfig
	Store     StoreConfig
	Search    SearchConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Sentry    SentryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// TrustedProxies lists the addresses or CIDR ranges allowed to set
	// X-Forwarded-For. Empty means clients are identified by peer address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// TimeoutConfig holds timeout settings for ride searches.
type TimeoutConfig struct {
	Search time.Duration `env:"TIMEOUT_SEARCH" envDefault:"3s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

// StoreConfig selects and locates the ride store.
type StoreConfig struct {
	Driver          string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL     string `env:"DATABASE_URL"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"rides.db"`
	SeedFile        string `env:"SEED_FILE"`
	ConnectAttempts int    `env:"STORE_CONNECT_ATTEMPTS" envDefault:"5"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	TimeZone       string `env:"SEARCH_TIMEZONE" envDefault:"Asia/Baghdad"`
	DefaultPerPage int    `env:"SEARCH_DEFAULT_PER_PAGE" envDefault:"10"`
	MaxPerPage     int    `env:"SEARCH_MAX_PER_PAGE" envDefault:"100"`
}

// CORSConfig holds the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// RateLimitConfig holds per-client request limits. A zero RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// SentryConfig holds error reporting settings. An empty DSN disables reporting.
type SentryConfig struct {
	DSN string `env:"SENTRY_DSN"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.Timeouts.Search <= 0 {
		return fmt.Errorf("TIMEOUT_SEARCH must be positive")
	}
	if err := validateProxies(cfg.Server.TrustedProxies); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if err := validateStore(cfg.Store); err != nil {
		return err
	}
	if err := validateSearch(cfg.Search); err != nil {
		return err
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if cfg.RateLimit.RPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	return nil
}

func validateStore(s StoreConfig) error {
	drivers := []string{DriverMemory, DriverSQLite, DriverPostgres}
	if !slices.Contains(drivers, s.Driver) {
		return fmt.Errorf("STORE_DRIVER must be one of: memory, sqlite, postgres; got %q", s.Driver)
	}
	if s.Driver == DriverPostgres && s.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
	}
	if s.Driver == DriverSQLite && s.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER is sqlite")
	}
	if s.ConnectAttempts < 1 {
		return fmt.Errorf("STORE_CONNECT_ATTEMPTS must be at least 1, got %d", s.ConnectAttempts)
	}
	return nil
}

func validateProxies(proxies []string) error {
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if _, _, err := net.ParseCIDR(p); err == nil {
			continue
		}
		if net.ParseIP(p) == nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP address or CIDR range", p)
		}
	}
	return nil
}

func validateSearch(s SearchConfig) error {
	if _, err := timeutil.GetLocation(s.TimeZone); err != nil {
		return fmt.Errorf("SEARCH_TIMEZONE %q: %w", s.TimeZone, err)
	}
	if s.MaxPerPage < 1 || s.MaxPerPage > domain.MaxPerPage {
		return fmt.Errorf("SEARCH_MAX_PER_PAGE must be between 1 and %d, got %d", domain.MaxPerPage, s.MaxPerPage)
	}
	if s.DefaultPerPage < 1 || s.DefaultPerPage > s.MaxPerPage {
		return fmt.Errorf("SEARCH_DEFAULT_PER_PAGE must be between 1 and SEARCH_MAX_PER_PAGE (%d), got %d", s.MaxPerPage, s.DefaultPerPage)
	}
	return nil
}

// Location returns the reference time zone for search dates.
// It must only be called on a validated config.
func (c *Config) Location() *time.Location {
	return timeutil.MustGetLocation(c.Search.TimeZone)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

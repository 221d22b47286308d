// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Timeouts  TimeoutConfig
	Logging   LoggingConfig
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Kafka     KafkaConfig
	Suppliers SuppliersConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
}

// TimeoutConfig holds timeout settings for supplier fan-out.
type TimeoutConfig struct {
	GlobalSearch time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"30s"`
	PerSupplier  time.Duration `env:"TIMEOUT_PER_SUPPLIER" envDefault:"25s"`
	Booking      time.Duration `env:"TIMEOUT_BOOKING" envDefault:"60s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// DatabaseConfig holds the gorm connection settings. An empty DSN runs
// without a database: no local inventory and no persisted supplier records.
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	DSN             string        `env:"DB_DSN"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	LogLevel        string        `env:"DB_LOG_LEVEL" envDefault:"warn"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"fsg:"`
}

// CacheConfig holds the offer, search and token cache settings.
type CacheConfig struct {
	Backend        string        `env:"CACHE_BACKEND" envDefault:"memory"`
	SearchEnabled  bool          `env:"CACHE_SEARCH_ENABLED" envDefault:"false"`
	SearchTTL      time.Duration `env:"CACHE_SEARCH_TTL" envDefault:"5m"`
	OfferTTL       time.Duration `env:"CACHE_OFFER_TTL" envDefault:"30m"`
	TokenTTLMargin time.Duration `env:"CACHE_TOKEN_TTL_MARGIN" envDefault:"2m"`
}

// KafkaConfig holds the booking event publisher settings.
type KafkaConfig struct {
	Enabled  bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Topic    string   `env:"KAFKA_TOPIC" envDefault:"flight.bookings"`
	ClientID string   `env:"KAFKA_CLIENT_ID" envDefault:"flight-supplier-gateway"`
}

// SuppliersConfig selects which adapters are built and where their defaults live.
type SuppliersConfig struct {
	File    string   `env:"SUPPLIERS_FILE" envDefault:"configs/suppliers.yaml"`
	Enabled []string `env:"SUPPLIERS_ENABLED" envDefault:"local,gds,ndc,partner" envSeparator:","`
}

// RateLimitConfig is the default outbound limit per supplier.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	Burst             int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
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

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.GlobalSearch <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_SEARCH must be positive")
	}
	if cfg.Timeouts.PerSupplier <= 0 {
		return fmt.Errorf("TIMEOUT_PER_SUPPLIER must be positive")
	}
	if cfg.Timeouts.Booking <= 0 {
		return fmt.Errorf("TIMEOUT_BOOKING must be positive")
	}

	if cfg.Timeouts.PerSupplier >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("TIMEOUT_PER_SUPPLIER (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Timeouts.PerSupplier, cfg.Timeouts.GlobalSearch)
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

	validDrivers := map[string]bool{"postgres": true, "mysql": true}
	if cfg.Database.Enabled() && !validDrivers[cfg.Database.Driver] {
		return fmt.Errorf("DB_DRIVER must be one of: postgres, mysql; got %q", cfg.Database.Driver)
	}

	validBackends := map[string]bool{"memory": true, "redis": true}
	if !validBackends[cfg.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis; got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.OfferTTL <= 0 || cfg.Cache.SearchTTL <= 0 {
		return fmt.Errorf("CACHE_OFFER_TTL and CACHE_SEARCH_TTL must be positive")
	}
	// A cached search must never hand out offer ids whose offers have already expired.
	if cfg.Cache.SearchTTL > cfg.Cache.OfferTTL {
		return fmt.Errorf("CACHE_SEARCH_TTL (%s) must not exceed CACHE_OFFER_TTL (%s)", cfg.Cache.SearchTTL, cfg.Cache.OfferTTL)
	}
	if cfg.Cache.TokenTTLMargin < 0 {
		return fmt.Errorf("CACHE_TOKEN_TTL_MARGIN must not be negative")
	}

	if cfg.Kafka.Enabled && (len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "") {
		return fmt.Errorf("KAFKA_BROKERS and KAFKA_TOPIC are required when KAFKA_ENABLED is true")
	}

	if len(cfg.Suppliers.Enabled) == 0 {
		return fmt.Errorf("SUPPLIERS_ENABLED must list at least one supplier")
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

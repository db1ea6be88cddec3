package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Swap      SwapConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DataConfig locates the clustered food table
type DataConfig struct {
	Source string `mapstructure:"source"` // "csv" or "sqlite"
	Path   string `mapstructure:"path"`
	Table  string `mapstructure:"table"` // sqlite only
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// SwapConfig tunes swap lookups
type SwapConfig struct {
	ExampleLimit    int `mapstructure:"example_limit"`
	SuggestionLimit int `mapstructure:"suggestion_limit"`
}

// LogConfig selects the logger mode
type LogConfig struct {
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutrimap/")

	// Environment variable settings: server.port -> NUTRIMAP_SERVER_PORT
	v.SetEnvPrefix("NUTRIMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// FOODS_CSV_PATH is kept for existing deployments
	if err := v.BindEnv("data.path", "NUTRIMAP_DATA_PATH", "FOODS_CSV_PATH"); err != nil {
		return nil, fmt.Errorf("bind data path: %w", err)
	}

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	config.Data.Source = strings.ToLower(strings.TrimSpace(config.Data.Source))
	config.Cache.Type = strings.ToLower(strings.TrimSpace(config.Cache.Type))

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Data defaults
	v.SetDefault("data.source", "csv")
	v.SetDefault("data.path", "data/processed/food_with_clusters.csv")
	v.SetDefault("data.table", "foods")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Swap defaults
	v.SetDefault("swap.example_limit", 20)
	v.SetDefault("swap.suggestion_limit", 5)

	// Log defaults
	v.SetDefault("log.mode", "development")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Data.Source != "csv" && config.Data.Source != "sqlite" {
		return fmt.Errorf("data source must be 'csv' or 'sqlite', got: %s", config.Data.Source)
	}

	if config.Data.Path == "" {
		return fmt.Errorf("data path is required (set NUTRIMAP_DATA_PATH)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Swap.ExampleLimit <= 0 {
		return fmt.Errorf("swap.example_limit must be positive, got: %d", config.Swap.ExampleLimit)
	}

	if config.Swap.SuggestionLimit < 0 {
		return fmt.Errorf("swap.suggestion_limit must not be negative, got: %d", config.Swap.SuggestionLimit)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

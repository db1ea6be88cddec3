package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"NUTRIMAP_SERVER_PORT",
	"NUTRIMAP_SERVER_ENVIRONMENT",
	"NUTRIMAP_SERVER_ALLOWED_ORIGINS",
	"NUTRIMAP_DATA_SOURCE",
	"NUTRIMAP_DATA_PATH",
	"NUTRIMAP_DATA_TABLE",
	"FOODS_CSV_PATH",
	"NUTRIMAP_CACHE_TYPE",
	"NUTRIMAP_CACHE_REDIS_URL",
	"NUTRIMAP_CACHE_TTL",
	"NUTRIMAP_RATELIMIT_PER_IP",
	"NUTRIMAP_SWAP_EXAMPLE_LIMIT",
	"NUTRIMAP_SWAP_SUGGESTION_LIMIT",
	"NUTRIMAP_LOG_MODE",
}

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Data.Source != "csv" {
			t.Errorf("Data.Source = %s, want csv", cfg.Data.Source)
		}
		if cfg.Data.Path != "data/processed/food_with_clusters.csv" {
			t.Errorf("Data.Path = %s, want data/processed/food_with_clusters.csv", cfg.Data.Path)
		}
		if cfg.Data.Table != "foods" {
			t.Errorf("Data.Table = %s, want foods", cfg.Data.Table)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Swap.ExampleLimit != 20 {
			t.Errorf("Swap.ExampleLimit = %d, want 20", cfg.Swap.ExampleLimit)
		}
		if cfg.Swap.SuggestionLimit != 5 {
			t.Errorf("Swap.SuggestionLimit = %d, want 5", cfg.Swap.SuggestionLimit)
		}
		if cfg.Log.Mode != "development" {
			t.Errorf("Log.Mode = %s, want development", cfg.Log.Mode)
		}
		if cfg.IsProduction() {
			t.Error("IsProduction() = true, want false")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIMAP_SERVER_PORT", "9090")
		os.Setenv("NUTRIMAP_SERVER_ENVIRONMENT", "production")
		os.Setenv("NUTRIMAP_DATA_SOURCE", "SQLite")
		os.Setenv("NUTRIMAP_DATA_PATH", "/srv/foods.db")
		os.Setenv("NUTRIMAP_DATA_TABLE", "clustered_foods")
		os.Setenv("NUTRIMAP_CACHE_TYPE", "redis")
		os.Setenv("NUTRIMAP_CACHE_REDIS_URL", "redis://localhost:6379")
		os.Setenv("NUTRIMAP_CACHE_TTL", "1h")
		os.Setenv("NUTRIMAP_RATELIMIT_PER_IP", "200")
		os.Setenv("NUTRIMAP_SWAP_EXAMPLE_LIMIT", "5")
		os.Setenv("NUTRIMAP_LOG_MODE", "production")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if !cfg.IsProduction() {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Data.Source != "sqlite" {
			t.Errorf("Data.Source = %s, want sqlite", cfg.Data.Source)
		}
		if cfg.Data.Path != "/srv/foods.db" {
			t.Errorf("Data.Path = %s, want /srv/foods.db", cfg.Data.Path)
		}
		if cfg.Data.Table != "clustered_foods" {
			t.Errorf("Data.Table = %s, want clustered_foods", cfg.Data.Table)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Swap.ExampleLimit != 5 {
			t.Errorf("Swap.ExampleLimit = %d, want 5", cfg.Swap.ExampleLimit)
		}
		if cfg.Log.Mode != "production" {
			t.Errorf("Log.Mode = %s, want production", cfg.Log.Mode)
		}
	})

	t.Run("honours FOODS_CSV_PATH", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODS_CSV_PATH", "/data/legacy.csv")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Data.Path != "/data/legacy.csv" {
			t.Errorf("Data.Path = %s, want /data/legacy.csv", cfg.Data.Path)
		}
	})

	t.Run("NUTRIMAP_DATA_PATH wins over FOODS_CSV_PATH", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("FOODS_CSV_PATH", "/data/legacy.csv")
		os.Setenv("NUTRIMAP_DATA_PATH", "/data/current.csv")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Data.Path != "/data/current.csv" {
			t.Errorf("Data.Path = %s, want /data/current.csv", cfg.Data.Path)
		}
	})

	t.Run("fails validation for invalid data source", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIMAP_DATA_SOURCE", "parquet")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for invalid data source")
		}
		if !strings.HasPrefix(err.Error(), "invalid configuration: data source must be") {
			t.Errorf("Load() error = %v, want data source error", err)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIMAP_CACHE_TYPE", "invalid")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis URL missing for redis cache", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("NUTRIMAP_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing Redis URL")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		if err := LoadEnvFile(); err != nil {
			t.Errorf("LoadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_COMMENTED")
		defer func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
		}()

		if err := LoadEnvFile(); err != nil {
			t.Fatalf("LoadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		os.Setenv("TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := LoadEnvFile(); err != nil {
			t.Fatalf("LoadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})

	t.Run("loads an explicit file", func(t *testing.T) {
		path := t.TempDir() + "/nutrimap.env"
		if err := os.WriteFile(path, []byte("FOODS_CSV_PATH=/tmp/foods.csv\n"), 0644); err != nil {
			t.Fatalf("Failed to create env file: %v", err)
		}
		os.Unsetenv("FOODS_CSV_PATH")
		defer os.Unsetenv("FOODS_CSV_PATH")

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile() error = %v, want nil", err)
		}
		if os.Getenv("FOODS_CSV_PATH") != "/tmp/foods.csv" {
			t.Errorf("FOODS_CSV_PATH = %s, want /tmp/foods.csv", os.Getenv("FOODS_CSV_PATH"))
		}
	})
}

func validConfig() *Config {
	return &Config{
		Data:      DataConfig{Source: "csv", Path: "foods.csv"},
		Cache:     CacheConfig{Type: "memory"},
		RateLimit: RateLimitConfig{PerIP: 100},
		Swap:      SwapConfig{ExampleLimit: 20, SuggestionLimit: 5},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid memory config", mutate: func(c *Config) {}},
		{name: "valid sqlite source", mutate: func(c *Config) { c.Data.Source = "sqlite" }},
		{name: "invalid data source", mutate: func(c *Config) { c.Data.Source = "xlsx" }, wantErr: true},
		{name: "empty data path", mutate: func(c *Config) { c.Data.Path = "" }, wantErr: true},
		{name: "invalid cache type", mutate: func(c *Config) { c.Cache.Type = "invalid-type" }, wantErr: true},
		{
			name: "redis with URL",
			mutate: func(c *Config) {
				c.Cache.Type = "redis"
				c.Cache.RedisURL = "redis://localhost:6379"
			},
		},
		{name: "redis without URL", mutate: func(c *Config) { c.Cache.Type = "redis" }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.PerIP = 0 }, wantErr: true},
		{name: "zero example limit", mutate: func(c *Config) { c.Swap.ExampleLimit = 0 }, wantErr: true},
		{name: "negative suggestion limit", mutate: func(c *Config) { c.Swap.SuggestionLimit = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// JWT
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Fantasy provider
	ProviderBaseURL   string        `mapstructure:"PROVIDER_BASE_URL"`
	ProviderRateLimit int           `mapstructure:"PROVIDER_RATE_LIMIT"`
	ProviderTimeout   time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	ProviderRetries   int           `mapstructure:"PROVIDER_RETRIES"`

	// Circuit breaker
	CircuitBreakerThreshold int `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Sync behavior
	StatsBatchConcurrency int    `mapstructure:"STATS_BATCH_CONCURRENCY"`
	SyncCacheTTL          int    `mapstructure:"SYNC_CACHE_TTL"`
	ResyncInterval        string `mapstructure:"RESYNC_INTERVAL"`
	EnableBackgroundSync  bool   `mapstructure:"ENABLE_BACKGROUND_SYNC"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_SECRET", "your-secret-key")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("PROVIDER_BASE_URL", "https://fantasysports.yahooapis.com/fantasy/v2")
	viper.SetDefault("PROVIDER_RATE_LIMIT", 5) // requests per second
	viper.SetDefault("PROVIDER_TIMEOUT", "30s")
	viper.SetDefault("PROVIDER_RETRIES", 3)
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("STATS_BATCH_CONCURRENCY", 4)
	viper.SetDefault("SYNC_CACHE_TTL", 600) // seconds
	viper.SetDefault("RESYNC_INTERVAL", "1h")
	viper.SetDefault("ENABLE_BACKGROUND_SYNC", false)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Commerce  CommerceConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Variants  VariantsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CommerceConfig holds Medusa store API configuration
type CommerceConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	PublishableKey    string        `mapstructure:"publishable_key"`
	RegionID          string        `mapstructure:"region_id"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        int           `mapstructure:"max_retries"`
	Debug             bool          `mapstructure:"debug"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL        string        `mapstructure:"redis_url"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// VariantsConfig holds variant resolution configuration
type VariantsConfig struct {
	VisualOption string `mapstructure:"visual_option"`
	MaxFavorites int    `mapstructure:"max_favorites"`
	DebugLogging bool   `mapstructure:"debug_logging"`
}

var tokenCharsRegex = regexp.MustCompile(`[a-z0-9]`)

// Load loads configuration from a .env file, environment variables and
// config files
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront/")

	// Environment variable settings
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("log.level", "info")

	// Commerce defaults
	v.SetDefault("commerce.base_url", "http://localhost:9000")
	v.SetDefault("commerce.region_id", "")
	v.SetDefault("commerce.publishable_key", "")
	v.SetDefault("commerce.timeout", "10s")
	v.SetDefault("commerce.requests_per_second", 20)
	v.SetDefault("commerce.burst", 40)
	v.SetDefault("commerce.max_retries", 3)
	v.SetDefault("commerce.debug", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 30)

	// Variant resolution defaults
	v.SetDefault("variants.visual_option", "Color")
	v.SetDefault("variants.max_favorites", 50)
	v.SetDefault("variants.debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Commerce.PublishableKey == "" {
		return fmt.Errorf("commerce publishable key is required (set STOREFRONT_COMMERCE_PUBLISHABLE_KEY)")
	}

	if config.Commerce.BaseURL == "" {
		return fmt.Errorf("commerce base URL is required")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if !tokenCharsRegex.MatchString(strings.ToLower(config.Variants.VisualOption)) {
		return fmt.Errorf("variants visual option must contain letters or digits, got: %q", config.Variants.VisualOption)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}

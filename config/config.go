package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Analysis  AnalysisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadSize  int64    `mapstructure:"max_upload_size"` // bytes, per file
}

// AnalysisConfig holds image analysis tuning
type AnalysisConfig struct {
	Workers           int `mapstructure:"workers"`             // 0 = one per CPU
	EdgeThreshold     int `mapstructure:"edge_threshold"`      // 8-bit luminance delta
	ComplexityMaxSide int `mapstructure:"complexity_max_side"` // px
	SwatchSize        int `mapstructure:"swatch_size"`         // px
}

// CacheConfig holds analysis cache configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second
	Burst int     `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/layoutforge/")

	// Environment variable settings
	v.SetEnvPrefix("LAYOUTFORGE")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.max_upload_size", 10<<20) // 10MB per file

	// Analysis defaults
	v.SetDefault("analysis.workers", 0)
	v.SetDefault("analysis.edge_threshold", 30)
	v.SetDefault("analysis.complexity_max_side", 100)
	v.SetDefault("analysis.swatch_size", 10)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Analysis.EdgeThreshold < 0 || config.Analysis.EdgeThreshold > 255 {
		return fmt.Errorf("analysis edge threshold must be within 0-255, got: %d", config.Analysis.EdgeThreshold)
	}

	if config.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("server max upload size must be positive, got: %d", config.Server.MaxUploadSize)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per_ip must be positive, got: %v", config.RateLimit.PerIP)
	}

	return nil
}

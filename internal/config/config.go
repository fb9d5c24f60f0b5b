package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration,
// populated from environment variables
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Librarian LibrarianConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, production
	Port        string
	Version     string
	CORSOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// =====================================================
// LIBRARIAN CONFIGURATION
// =====================================================

type LibrarianConfig struct {
	APIKey          string // Gemini API key
	Model           string
	TimeoutSeconds  int
	RatePerMinute   int     // per-user quota on librarian endpoints
	OutboundQPS     float64 // calls per second to the completion service
	BreakerFailures int     // consecutive failures that open the breaker
	BreakerCooldown int     // seconds before a half-open probe
}

func (c LibrarianConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiry) * time.Minute
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "SmartLibrary API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigins: getEnvList("APP_CORS_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60), // 1 hour
		},
		Librarian: LibrarianConfig{
			APIKey:          getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:           getEnv("LIBRARIAN_MODEL", "gemini-2.5-flash"),
			TimeoutSeconds:  getEnvInt("LIBRARIAN_TIMEOUT_SECONDS", 30),
			RatePerMinute:   getEnvInt("LIBRARIAN_RATE_PER_MINUTE", 20),
			OutboundQPS:     getEnvFloat("LIBRARIAN_OUTBOUND_QPS", 2),
			BreakerFailures: getEnvInt("LIBRARIAN_BREAKER_FAILURES", 5),
			BreakerCooldown: getEnvInt("LIBRARIAN_BREAKER_COOLDOWN_SECONDS", 30),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}
	if c.Librarian.TimeoutSeconds <= 0 {
		return fmt.Errorf("LIBRARIAN_TIMEOUT_SECONDS must be positive")
	}
	if c.Librarian.BreakerFailures <= 0 {
		return fmt.Errorf("LIBRARIAN_BREAKER_FAILURES must be positive")
	}

	if c.Librarian.APIKey == "" {
		fmt.Println("WARNING: GEMINI_API_KEY not set - AI librarian will answer with fallback text")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

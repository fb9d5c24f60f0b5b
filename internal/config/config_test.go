package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "APP_CORS_ORIGINS", "JWT_SECRET", "JWT_ACCESS_EXPIRY",
		"GEMINI_API_KEY", "API_KEY", "LIBRARIAN_MODEL", "LIBRARIAN_TIMEOUT_SECONDS",
		"LIBRARIAN_RATE_PER_MINUTE", "LIBRARIAN_OUTBOUND_QPS", "LIBRARIAN_BREAKER_FAILURES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Empty(t, cfg.App.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL())
	assert.Equal(t, "gemini-2.5-flash", cfg.Librarian.Model)
	assert.Equal(t, 30*time.Second, cfg.Librarian.Timeout())
	assert.Equal(t, 20, cfg.Librarian.RatePerMinute)
	assert.Equal(t, 2.0, cfg.Librarian.OutboundQPS)
	assert.Equal(t, 5, cfg.Librarian.BreakerFailures)
}

func TestLoad_APIKeyFallback(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.Librarian.APIKey)

	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.Librarian.APIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_CORS_ORIGINS", "http://localhost:5173, ,https://smartlib.example")
	t.Setenv("LIBRARIAN_OUTBOUND_QPS", "0.5")
	t.Setenv("LIBRARIAN_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173", "https://smartlib.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, 0.5, cfg.Librarian.OutboundQPS)
	assert.Equal(t, 30, cfg.Librarian.TimeoutSeconds)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:       AppConfig{Environment: "production"},
			JWT:       JWTConfig{Secret: "strong", AccessTokenExpiry: 60},
			Librarian: LibrarianConfig{APIKey: "k", TimeoutSeconds: 30, BreakerFailures: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"default secret in production", func(c *Config) { c.JWT.Secret = defaultJWTSecret }, "JWT_SECRET"},
		{"default secret in development", func(c *Config) {
			c.App.Environment = "development"
			c.JWT.Secret = defaultJWTSecret
		}, ""},
		{"zero expiry", func(c *Config) { c.JWT.AccessTokenExpiry = 0 }, "JWT_ACCESS_EXPIRY"},
		{"zero timeout", func(c *Config) { c.Librarian.TimeoutSeconds = 0 }, "LIBRARIAN_TIMEOUT_SECONDS"},
		{"zero breaker", func(c *Config) { c.Librarian.BreakerFailures = 0 }, "LIBRARIAN_BREAKER_FAILURES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

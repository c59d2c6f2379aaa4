package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"ENV", "CI", "SERVER_HOST", "SERVER_PORT", "CORS_ALLOWED_ORIGINS",
	"SPOONACULAR_API_KEY", "SPOONACULAR_API_KEY_FILE", "SPOONACULAR_BASE_URL",
	"HTTP_TIMEOUT", "PROVIDER_RPS", "FETCH_WORKERS", "CACHE_TTL",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSL_MODE", "SQLITE_PATH", "REDIS_URL", "REDIS_HOST", "REDIS_PORT",
	"REDIS_PASSWORD", "REDIS_DB", "RATE_LIMIT_PER_HOUR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DefaultSpoonacularURL, cfg.SpoonacularBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.FetchWorkers)
	assert.Equal(t, 5.0, cfg.ProviderRPS)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "pantry.db", cfg.SQLitePath)
	assert.Equal(t, 60, cfg.RateLimitPerHour)
	assert.Empty(t, cfg.SpoonacularAPIKey)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SPOONACULAR_API_KEY", "test-key")
	t.Setenv("SPOONACULAR_BASE_URL", "http://localhost:4010/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("FETCH_WORKERS", "2")
	t.Setenv("PROVIDER_RPS", "0.5")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "test-key", cfg.SpoonacularAPIKey)
	assert.Equal(t, "http://localhost:4010", cfg.SpoonacularBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.FetchWorkers)
	assert.Equal(t, 0.5, cfg.ProviderRPS)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Contains(t, cfg.PostgresDSN(), "user=postgres password=secret dbname=pantry")
}

func TestLoadConfig_APIKeyFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "spoonacular_api_key")
	require.NoError(t, os.WriteFile(path, []byte("  file-key\n"), 0o600))
	t.Setenv("SPOONACULAR_API_KEY_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.SpoonacularAPIKey)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"bad port", "SERVER_PORT", "http", "SERVER_PORT"},
		{"bad timeout", "HTTP_TIMEOUT", "soon", "HTTP_TIMEOUT"},
		{"bad workers", "FETCH_WORKERS", "0", "FETCH_WORKERS"},
		{"bad driver", "DB_DRIVER", "mongo", "DB_DRIVER"},
		{"relative url", "SPOONACULAR_BASE_URL", "api.spoonacular.com", "SPOONACULAR_BASE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)

			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestGetEnvironment(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.Equal(t, "release", GetEnvironment().GinMode())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSpoonacularURL = "https://api.spoonacular.com"
	DefaultServerPort     = "8080"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost         string
	ServerPort         string
	CORSAllowedOrigins []string

	// Recipe provider configuration
	SpoonacularAPIKey  string
	SpoonacularBaseURL string
	HTTPTimeout        time.Duration
	ProviderRPS        float64
	FetchWorkers       int
	CacheTTL           time.Duration

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	RateLimitPerHour int
}

// LoadConfig reads an optional .env file, then builds the configuration from
// environment variables and validates it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.SpoonacularAPIKey == "" {
		log.Printf("[Config] SPOONACULAR_API_KEY is not set; provider requests will be rejected")
	}

	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Environment:        GetEnvironment(),
		ServerHost:         os.Getenv("SERVER_HOST"),
		ServerPort:         getEnv("SERVER_PORT", DefaultServerPort),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		SpoonacularBaseURL: strings.TrimRight(getEnv("SPOONACULAR_BASE_URL", DefaultSpoonacularURL), "/"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         readSecretEnv("DB_PASSWORD"),
		DBName:             getEnv("DB_NAME", "pantry"),
		DBSSLMode:          getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:         getEnv("SQLITE_PATH", "pantry.db"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      readSecretEnv("REDIS_PASSWORD"),
	}

	// The key is not required here; a missing key surfaces as a provider HTTP error.
	cfg.SpoonacularAPIKey = readSecretEnv("SPOONACULAR_API_KEY")

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FetchWorkers, err = getInt("FETCH_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerHour, err = getInt("RATE_LIMIT_PER_HOUR", 60); err != nil {
		return nil, err
	}
	if v := os.Getenv("PROVIDER_RPS"); v != "" {
		if cfg.ProviderRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, ValidationError{Field: "PROVIDER_RPS", Message: "must be a number"}
		}
	} else {
		cfg.ProviderRPS = 5
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a Redis endpoint has been configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be a duration such as 15s"}
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecretEnv returns KEY if set, otherwise the trimmed contents of the file
// named by KEY_FILE (Docker secrets).
func readSecretEnv(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		log.Printf("[Config] failed to read %s_FILE: %v", key, err)
		return ""
	}
	return strings.TrimSpace(string(data))
}

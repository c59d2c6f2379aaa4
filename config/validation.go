package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks value ranges and the settings the selected backends need.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must be a port number"})
	}

	if u, err := url.Parse(cfg.SpoonacularBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "SPOONACULAR_BASE_URL", Message: "must be an absolute URL"})
	}

	if cfg.HTTPTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "HTTP_TIMEOUT", Message: "must be positive"})
	}
	if cfg.FetchWorkers < 1 {
		errs = append(errs, ValidationError{Field: "FETCH_WORKERS", Message: "must be at least 1"})
	}
	if cfg.ProviderRPS < 0 {
		errs = append(errs, ValidationError{Field: "PROVIDER_RPS", Message: "must not be negative"})
	}
	if cfg.RateLimitPerHour < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_HOUR", Message: "must not be negative"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"})
		}
	case "postgres":
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{Field: "DB_USER", Message: "is required for the postgres driver"})
		}
		if cfg.DBPassword == "" && (cfg.Environment == Production || cfg.Environment == CI) {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "is required in " + string(cfg.Environment)})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	return errors.Join(errs...)
}

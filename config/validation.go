package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "\n")
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	// Fields that must be set for any driver
	Required []string
	// Fields that must be set when DB_DRIVER=postgres
	Postgres []string
	// Minimum JWT secret length, zero for no check
	MinJWTSecret int
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			Required: []string{"SERVER_PORT", "JWT_SECRET"},
			Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
		},
		Test: {
			Required: []string{"SERVER_PORT", "JWT_SECRET"},
			Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
		},
		CI: {
			Required: []string{"SERVER_PORT", "JWT_SECRET"},
			Postgres: []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"},
		},
		Production: {
			Required:     []string{"SERVER_PORT", "JWT_SECRET"},
			Postgres:     []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE"},
			MinJWTSecret: 32,
		},
	}
)

func fieldValues(cfg *Config) map[string]string {
	return map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"JWT_SECRET":  cfg.JWTSecret,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"DB_SSL_MODE": cfg.DBSSLMode,
		"DB_PATH":     cfg.DBPath,
	}
}

// ValidateConfig checks if the configuration meets the requirements for env
func ValidateConfig(cfg *Config, env Environment) error {
	reqs, ok := requirements[env]
	if !ok {
		return ValidationError{Field: "ENV", Message: fmt.Sprintf("unknown environment %s", env)}
	}

	values := fieldValues(cfg)
	var errs ValidationErrors

	required := reqs.Required
	switch cfg.DBDriver {
	case DriverPostgres:
		required = append(required, reqs.Postgres...)
	case DriverSQLite:
		required = append(required, "DB_PATH")
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	for _, field := range required {
		if values[field] == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	if reqs.MinJWTSecret > 0 && cfg.JWTSecret != "" && len(cfg.JWTSecret) < reqs.MinJWTSecret {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: fmt.Sprintf("must be at least %d characters", reqs.MinJWTSecret)})
	}
	if cfg.FoodLogRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "FOOD_LOG_RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.ExportURLTTL <= 0 {
		errs = append(errs, ValidationError{Field: "EXPORT_URL_TTL", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBPath        string
	MigrationsDir string

	// Redis configuration, optional
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Export storage, optional
	S3Bucket     string
	S3Endpoint   string
	AWSRegion    string
	ExportURLTTL time.Duration

	// Requests per hour allowed on food logging routes, per user
	FoodLogRateLimit int
}

// Driver names accepted in DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether export archives can be uploaded
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadTunables(cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI using only environment variables
func loadCIConfig(cfg *Config) {
	loadFromEnv(cfg)
	if cfg.DBPassword == "" {
		cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	}
}

// loadDevConfig loads an optional .env file, then environment variables,
// then falls back to Docker secrets and local defaults
func loadDevConfig(cfg *Config) error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	loadFromEnv(cfg)

	cfg.DBUser = firstNonEmpty(cfg.DBUser, readSecret("db_user"), "postgres")
	cfg.DBPassword = firstNonEmpty(cfg.DBPassword, readSecret("db_password"))
	cfg.JWTSecret = firstNonEmpty(cfg.JWTSecret, readSecret("jwt_secret"))
	cfg.RedisPassword = firstNonEmpty(cfg.RedisPassword, readSecret("redis_password"))

	cfg.ServerPort = firstNonEmpty(cfg.ServerPort, "8080")
	cfg.ServerHost = firstNonEmpty(cfg.ServerHost, "localhost")
	cfg.DBHost = firstNonEmpty(cfg.DBHost, "localhost")
	cfg.DBPort = firstNonEmpty(cfg.DBPort, "5432")
	cfg.DBName = firstNonEmpty(cfg.DBName, "macrotrack")
	cfg.DBSSLMode = firstNonEmpty(cfg.DBSSLMode, "disable")
	if cfg.DBDriver == DriverSQLite {
		cfg.DBPath = firstNonEmpty(cfg.DBPath, "macrotrack.db")
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:5173", "http://frontend:5173"}
	}

	return nil
}

// loadProdConfig loads production configuration. Sensitive values come only from Docker secrets.
func loadProdConfig(cfg *Config) {
	loadFromEnv(cfg)

	cfg.ServerPort = firstNonEmpty(readSecret("server_port"), cfg.ServerPort)
	cfg.ServerHost = firstNonEmpty(readSecret("server_host"), cfg.ServerHost)
	cfg.DBHost = firstNonEmpty(readSecret("db_host"), cfg.DBHost)
	cfg.DBPort = firstNonEmpty(readSecret("db_port"), cfg.DBPort)
	cfg.DBName = firstNonEmpty(readSecret("db_name"), cfg.DBName)
	cfg.DBSSLMode = firstNonEmpty(readSecret("db_ssl_mode"), cfg.DBSSLMode, "require")
	cfg.RedisURL = firstNonEmpty(readSecret("redis_url"), cfg.RedisURL)

	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
}

func loadFromEnv(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBDriver = firstNonEmpty(strings.ToLower(os.Getenv("DB_DRIVER")), DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.DBPath = os.Getenv("DB_PATH")
	cfg.MigrationsDir = firstNonEmpty(os.Getenv("MIGRATIONS_DIR"), "migrations")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = firstNonEmpty(os.Getenv("REDIS_PORT"), "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.AWSRegion = firstNonEmpty(os.Getenv("AWS_REGION"), "us-east-1")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
}

// loadTunables parses the numeric and duration settings
func loadTunables(cfg *Config) error {
	cfg.ExportURLTTL = 15 * time.Minute
	if v := os.Getenv("EXPORT_URL_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "EXPORT_URL_TTL", Message: fmt.Sprintf("invalid duration %q", v)}
		}
		cfg.ExportURLTTL = d
	}

	cfg.FoodLogRateLimit = 120
	if v := os.Getenv("FOOD_LOG_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "FOOD_LOG_RATE_LIMIT", Message: fmt.Sprintf("invalid integer %q", v)}
		}
		cfg.FoodLogRateLimit = n
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

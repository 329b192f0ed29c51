package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Storage backends understood by the store factory.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	StorageBackend  string
	DatabasePath    string
	MongoURI        string
	MongoDatabase   string
	PublicDir       string // Static assets served under /
	ViewsDir        string // Holds index.html
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string // "console" or "json"
	MaintenanceCron string // Empty disables store maintenance
}

// Load loads configuration from an optional .env file and environment variables,
// falling back to defaults.
func Load() (*Config, error) {
	// A missing .env is not an error; the environment may already be populated.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "3000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	cfg := &Config{
		ServerPort:      port,
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		DatabasePath:    getEnv("DATABASE_PATH", "./exercise-tracker.db"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "exercise_tracker"),
		PublicDir:       getEnv("PUBLIC_DIR", "./public"),
		ViewsDir:        getEnv("VIEWS_DIR", "./views"),
		AllowedOrigins:  splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		MaintenanceCron: getEnv("MAINTENANCE_CRON", "0 3 * * *"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	switch c.StorageBackend {
	case BackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required when STORAGE_BACKEND=%s", BackendSQLite)
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORAGE_BACKEND=%s", BackendMongo)
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: %s, %s", BackendSQLite, BackendMongo)
	}
	if c.MaintenanceCron != "" {
		if _, err := cron.ParseStandard(c.MaintenanceCron); err != nil {
			return fmt.Errorf("invalid MAINTENANCE_CRON: %w", err)
		}
	}
	return nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

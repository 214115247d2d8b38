package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Lending  LendingConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string // listen address (e.g., ":3000")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string        // JWT signing secret
	TokenTTL  time.Duration // token lifetime
}

// LendingConfig contains lending policy settings.
type LendingConfig struct {
	LoanPeriodDays int   // due date offset for new loans
	LateFine       int64 // flat fine for late returns
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() (*Config, error) {
	ttlMinutes, err := getEnvInt("TOKEN_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	loanDays, err := getEnvInt("LOAN_PERIOD_DAYS", 15)
	if err != nil {
		return nil, err
	}
	lateFine, err := getEnvInt("LATE_FINE", 100)
	if err != nil {
		return nil, err
	}
	return &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "library.db"),
		},
		HTTP: HTTPConfig{
			Address: getEnv("HTTP_ADDRESS", ":3000"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(ttlMinutes) * time.Minute,
		},
		Lending: LendingConfig{
			LoanPeriodDays: loanDays,
			LateFine:       int64(lateFine),
		},
	}, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, Auth: *** (masked) ***, Loan: %dd/%d}",
		c.Database.Path, c.HTTP.Address, c.Lending.LoanPeriodDays, c.Lending.LateFine)
}

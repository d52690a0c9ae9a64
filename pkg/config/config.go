package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	Environment string
	ServerPort  int
	LogLevel    string
	RedisURL    string

	DatabaseHost     string
	DatabasePort     int
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string

	JWTSecret         string
	TokenTTL          time.Duration
	MinPasswordLength int

	CORSAllowedOrigins []string

	// Positions is the configured set of valid staff positions; the first
	// entries double as the role vocabulary.
	Positions []string
	// AdminRoles is the administrative role set used by the access policy.
	AdminRoles []string

	DefaultPageSize int

	// CheckoutSweepInterval is how often the booking worker releases
	// bookings whose check-out date has passed.
	CheckoutSweepInterval time.Duration
	// DashboardCacheTTL bounds how stale the dashboard counters may be.
	DashboardCacheTTL time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	tokenTTLMin, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %w", err)
	}

	minPassword, err := strconv.Atoi(getEnv("MIN_PASSWORD_LENGTH", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_PASSWORD_LENGTH: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %w", err)
	}

	sweepMin, err := strconv.Atoi(getEnv("CHECKOUT_SWEEP_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKOUT_SWEEP_MINUTES: %w", err)
	}

	cacheSec, err := strconv.Atoi(getEnv("DASHBOARD_CACHE_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_CACHE_SECONDS: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  port,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),

		DatabaseHost:     getEnv("DB_HOST", "localhost"),
		DatabasePort:     dbPort,
		DatabaseUser:     getEnv("DB_USER", "hoteldesk"),
		DatabasePassword: getEnv("DB_PASSWORD", "dev"),
		DatabaseName:     getEnv("DB_NAME", "hoteldesk"),
		DatabaseSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(tokenTTLMin) * time.Minute,
		MinPasswordLength: minPassword,

		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),

		Positions: parseCSVEnv("STAFF_POSITIONS", []string{
			"Admin", "Manager", "Receptionist", "Housekeeper", "Maintenance", "Chef",
		}),
		AdminRoles: parseCSVEnv("ADMIN_ROLES", []string{"admin", "manager"}),

		DefaultPageSize: pageSize,

		CheckoutSweepInterval: time.Duration(sweepMin) * time.Minute,
		DashboardCacheTTL:     time.Duration(cacheSec) * time.Second,
	}

	if cfg.Environment == "production" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

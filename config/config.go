package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	KratosURL              string        // Kratos internal URL (Frontend API - port 4433)
	KratosAdminURL         string        // Kratos Admin API URL (port 4434)
	DatabaseURL            string        // Postgres DSN for the profile store
	Port                   string        // Service port
	OIDCProvider           string        // Provider id for federated sign-in
	SessionPollInterval    time.Duration // Session watcher poll interval
	ProfileCacheTTL        time.Duration // Profile cache TTL
	CSRFSecret             string        // CSRF secret for token generation
	AuthSharedSecret       string        // Shared secret for internal endpoints
	DashboardTokenSecret   string        // Secret for signing dashboard JWT tokens
	DashboardTokenIssuer   string        // JWT issuer claim
	DashboardTokenAudience string        // JWT audience claim
	DashboardTokenTTL      time.Duration // JWT token TTL
	LandingRoute           string        // Where a completed sign-out redirects to
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		KratosURL:              getEnv("KRATOS_URL", "http://kratos:4433"),
		KratosAdminURL:         getEnv("KRATOS_ADMIN_URL", "http://kratos:4434"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		Port:                   getEnv("PORT", "8888"),
		OIDCProvider:           getEnv("OIDC_PROVIDER", "google"),
		SessionPollInterval:    30 * time.Second,
		ProfileCacheTTL:        5 * time.Minute,
		CSRFSecret:             getEnv("CSRF_SECRET", ""),
		AuthSharedSecret:       getEnv("AUTH_SHARED_SECRET", ""),
		DashboardTokenSecret:   getEnv("DASHBOARD_TOKEN_SECRET", ""),
		DashboardTokenIssuer:   getEnv("DASHBOARD_TOKEN_ISSUER", "session-hub"),
		DashboardTokenAudience: getEnv("DASHBOARD_TOKEN_AUDIENCE", "dashboard"),
		DashboardTokenTTL:      5 * time.Minute,
		LandingRoute:           getEnv("LANDING_ROUTE", "/"),
	}

	for _, d := range []struct {
		key    string
		target *time.Duration
	}{
		{"SESSION_POLL_INTERVAL", &config.SessionPollInterval},
		{"PROFILE_CACHE_TTL", &config.ProfileCacheTTL},
		{"DASHBOARD_TOKEN_TTL", &config.DashboardTokenTTL},
	} {
		if raw := os.Getenv(d.key); raw != "" {
			duration, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s format: %w", d.key, err)
			}
			*d.target = duration
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.KratosURL == "" {
		return fmt.Errorf("KRATOS_URL cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.SessionPollInterval <= 0 {
		return fmt.Errorf("SESSION_POLL_INTERVAL must be positive")
	}

	if c.ProfileCacheTTL <= 0 {
		return fmt.Errorf("PROFILE_CACHE_TTL must be positive")
	}

	if c.DashboardTokenSecret == "" {
		return fmt.Errorf("DASHBOARD_TOKEN_SECRET cannot be empty")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Remote ledger API
	LedgerAPIURL string

	// The distinguished mobile number granting unrestricted list access.
	AdminMobile string

	// Session store
	SessionDB      string
	SessionSecret  string
	SessionTimeout time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		LedgerAPIURL: getEnv("LEDGER_API_URL", "http://localhost:9090"),

		AdminMobile: getEnv("ADMIN_MOBILE", "9999999999"),

		SessionDB:     getEnv("SESSION_DB", "portal-sessions.db"),
		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
	}

	// Parse session inactivity timeout
	timeoutStr := getEnv("SESSION_TIMEOUT", "30m")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TIMEOUT value '%s', falling back to 30m\n", timeoutStr)
		timeout = 30 * time.Minute
	}
	config.SessionTimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

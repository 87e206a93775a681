package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	MarketData MarketDataConfig
	Currency   CurrencyConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketDataConfig holds quote-refresh configuration.
// Provider selects the quote source ("yahoo" or "alphavantage").
// RefreshSpec is a standard 5-field cron expression; an empty string disables
// the scheduler. FernetKey is the base64 key used to encrypt the provider API
// key at rest.
type MarketDataConfig struct {
	Provider    string
	RefreshSpec string
	FernetKey   string
}

// CurrencyConfig holds the base currency all stored exchange rates are
// expressed against.
type CurrencyConfig struct {
	Base string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		MarketData: MarketDataConfig{
			Provider:    getEnv("MARKETDATA_PROVIDER", "yahoo"),
			RefreshSpec: getEnv("QUOTE_REFRESH_SPEC", "*/30 * * * *"),
			FernetKey:   getEnv("FERNET_KEY", ""),
		},
		Currency: CurrencyConfig{
			Base: getEnv("BASE_CURRENCY", "USD"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Tax      TaxConfig
	Pricing  PricingConfig
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

// TaxConfig holds the proxy rates and recommendation thresholds applied by
// the tax engine.
type TaxConfig struct {
	ShortTermRate      decimal.Decimal
	LongTermRate       decimal.Decimal
	HarvestThreshold   decimal.Decimal
	LongTermWindowDays int
}

// PricingConfig holds configuration for the asset price refresher.
type PricingConfig struct {
	// RefreshSchedule is a cron expression for periodic price refreshes.
	RefreshSchedule string
	// BaseURL overrides the CoinGecko endpoint, mainly for tests.
	BaseURL string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	shortRate, err := getEnvDecimal("TAX_SHORT_TERM_RATE", "0.24")
	if err != nil {
		return nil, err
	}
	longRate, err := getEnvDecimal("TAX_LONG_TERM_RATE", "0.15")
	if err != nil {
		return nil, err
	}
	harvestThreshold, err := getEnvDecimal("TAX_HARVEST_THRESHOLD", "100")
	if err != nil {
		return nil, err
	}
	windowDays, err := getEnvInt("TAX_LONG_TERM_WINDOW_DAYS", 30)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/tax_engine.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"), ","),
		},
		Tax: TaxConfig{
			ShortTermRate:      shortRate,
			LongTermRate:       longRate,
			HarvestThreshold:   harvestThreshold,
			LongTermWindowDays: windowDays,
		},
		Pricing: PricingConfig{
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@hourly"),
			BaseURL:         getEnv("PRICE_API_BASE_URL", ""),
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

func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal for %s: %w", key, err)
	}
	return value, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return value, nil
}

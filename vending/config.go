package vending

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is a configuration for the vending machine application.
type Config struct {
	HTTPAddr string
	// Currency is the display unit (e.g. "MAD"); the contract itself is
	// unit-agnostic.
	Currency string
	// DevMode disables response compression and loosens logging.
	DevMode bool
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: "localhost:3000",
		Currency: "MAD",
	}
}

// LoadConfig reads configuration from the environment, loading a .env
// file first when one exists.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.Currency = getEnv("CURRENCY", cfg.Currency)
	cfg.DevMode = getEnvAsBool("DEV_MODE", cfg.DevMode)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port      string
	PublicDir string

	// Local store configuration
	DBType            string // sqlite, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string // for sqlite this is the file path
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Remote mirror configuration (optional; empty MirrorURL disables the mirror)
	MirrorURL       string
	MirrorPassword  string
	MirrorTimeoutMS int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		PublicDir:         getEnv("PUBLIC_DIR", ""),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", "portfolio.db"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		MirrorURL:         getEnv("MIRROR_URL", ""),
		MirrorPassword:    getEnv("MIRROR_PASSWORD", ""),
		MirrorTimeoutMS:   getEnvAsInt("MIRROR_TIMEOUT_MS", 3000),
	}

	return cfg, nil
}

// MirrorConfigured reports whether the remote mirror endpoint is present.
// An absent endpoint means the mirror is unavailable, not an error.
func (c *Config) MirrorConfigured() bool {
	return c.MirrorURL != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

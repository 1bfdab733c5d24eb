// Package config reads configuration from the environment. Callers load a
// .env file first if they want one; precedence is explicit env var > .env >
// default.
package config

import (
	"os"
	"strings"
)

type Config struct {
	Port string
	Env  string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string
	// DatabaseDSN, when set, overrides the individual DB_* parts.
	DatabaseDSN string

	// Migrations selects golang-migrate SQL migrations instead of the
	// AutoMigrate schema sync.
	Migrations bool
	DBDebug    bool
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("APP_ENV", "development"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "quotations"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      getEnv("DB_PASS", ""),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		Migrations:  truthy(os.Getenv("MIGRATIONS")),
		DBDebug:     truthy(os.Getenv("DB_DEBUG")),
	}
}

// Production reports whether schema auto-sync should be skipped.
func (c Config) Production() bool { return c.Env == "production" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable.
type Config struct {
	Env             string // application environment (dev/test/prod)
	Port            string // HTTP port to listen on
	BlobDriver      string // blob store backend: memory | redis | mysql
	DBUser          string // MySQL username (mysql driver only)
	DBPass          string // MySQL password (optional)
	DBHost          string // MySQL host
	DBPort          string // MySQL port
	DBName          string // MySQL database name
	JWTSecret       string // secret used to sign access tokens
	AccessTTLMin    int    // access token time-to-live in minutes
	TelegramAPIBase string // Telegram Bot API base URL
	AdminResetHash  string // bcrypt hash guarding factory reset (empty disables reset)
}

// Load reads configuration from the environment. JWT_SECRET is the only
// hard requirement; everything else has a development-friendly default.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            getenv("APP_PORT", "8080"),
		BlobDriver:      getenv("BLOB_DRIVER", "memory"),
		DBUser:          os.Getenv("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "3306"),
		DBName:          getenv("DB_NAME", "goaltrack"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    getenvInt("ACCESS_TOKEN_TTL_MIN", 60),
		TelegramAPIBase: getenv("TELEGRAM_API_BASE", "https://api.telegram.org"),
		AdminResetHash:  os.Getenv("ADMIN_RESET_PASSWORD_HASH"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

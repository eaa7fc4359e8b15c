package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration. It is loaded once in main and
// passed to constructors; nothing reads the environment after startup.
type Config struct {
	Port        string
	DatabaseURL string

	// Remote libsql database. When both are set the store runs against
	// the Turso HTTP API instead of a local connection.
	TursoDatabaseURL string
	TursoAuthToken   string

	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads the environment (and a .env file when present) into a Config.
func Load() Config {
	// Missing .env is fine in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DatabaseURL:      getenv("DATABASE_URL", "our_area.db"),
		TursoDatabaseURL: os.Getenv("TURSO_DATABASE_URL"),
		TursoAuthToken:   os.Getenv("TURSO_AUTH_TOKEN"),
		JWTSecret:        getenv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:         30 * time.Minute,
	}
	if mins, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES")); err == nil && mins > 0 {
		cfg.TokenTTL = time.Duration(mins) * time.Minute
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

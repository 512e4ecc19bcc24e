package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigin  string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
// A .env file in the working directory is merged in first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:    24 * time.Hour,
		CORSOrigin:  envDefault("CORS_ORIGIN", "http://localhost:5173"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL must be a positive duration")
		}
		cfg.TokenTTL = ttl
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisAddr     string
	Timezone      string
	JWTSigningKey string
	FanoutWidth   int
	BatchWidth    int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CONDUCT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	timezone := os.Getenv("CONDUCT_TIMEZONE")
	if timezone == "" {
		// Day boundaries are computed in this zone.
		timezone = "UTC"
	}

	jwtSigningKey := os.Getenv("CONDUCT_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("CONDUCT_DATABASE_URL"),
		RedisAddr:     os.Getenv("CONDUCT_REDIS_ADDR"),
		Timezone:      timezone,
		JWTSigningKey: jwtSigningKey,
		FanoutWidth:   intFromEnv("CONDUCT_FANOUT_WIDTH", 8),
		BatchWidth:    intFromEnv("CONDUCT_BATCH_WIDTH", 8),
	}
}

// Location resolves the configured timezone.
func (s Server) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

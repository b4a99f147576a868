// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	// ErrMissingRequiredEnv is returned when a required environment variable is unset.
	ErrMissingRequiredEnv = errors.New("missing required environment variable")

	// ErrWeakSessionSecret is returned when SESSION_SECRET is too short to sign cookies safely.
	ErrWeakSessionSecret = errors.New("SESSION_SECRET must be at least 32 bytes")
)

// Config holds all runtime settings for the microblog server.
type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string

	// SessionSecret signs the session cookie token.
	SessionSecret string

	// PostsPerPage is the fixed, process-wide page size for every feed.
	PostsPerPage int

	// SessionTTL is the lifetime of a plain login session.
	// RememberTTL applies when the user checks "remember me".
	SessionTTL  time.Duration
	RememberTTL time.Duration

	LogDir string
}

// Load reads the configuration from the environment.
// It returns an error for missing required values instead of falling back silently.
func Load() (Config, error) {
	secret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return Config{}, err
	}
	if len(secret) < 32 {
		return Config{}, ErrWeakSessionSecret
	}

	return Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   databaseDSN(),
		RedisAddr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionSecret: secret,
		PostsPerPage:  getIntEnv("POSTS_PER_PAGE", 10),
		SessionTTL:    getDurationEnv("SESSION_TTL", 24*time.Hour),
		RememberTTL:   getDurationEnv("REMEMBER_TTL", 30*24*time.Hour),
		LogDir:        getEnv("LOG_DIR", ""),
	}, nil
}

// databaseDSN assembles the MySQL DSN from its parts, preferring a Cloud SQL
// unix socket when INSTANCE_CONNECTION_NAME is set.
func databaseDSN() string {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			user, pass, instance, name)
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "3306")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		user, pass, host, port, name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

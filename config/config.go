package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every environment-driven setting, constructed once at
// process start and passed by reference to the components that need it.
type Config struct {
	ServiceName string
	APIPrefix   string
	Port        string

	DatabaseURL string

	AllowedOrigins []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	SeedDB bool
	Debug  bool
}

// Load builds the Config from environment variables. DATABASE_URL is the
// only required setting; everything else has a default.
func Load() (*Config, error) {
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	return &Config{
		ServiceName:     getEnv("SERVICE_NAME", "Portfolio API"),
		APIPrefix:       getEnv("API_V1_PREFIX", "/api/v1"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     databaseURL,
		AllowedOrigins:  splitAndTrim(getEnv("ACCEPTED_ORIGINS", "*")),
		ReadTimeout:     time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:     time.Duration(getEnvInt("IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		SeedDB:          getEnvBool("SEED_DB", false),
		Debug:           getEnvBool("DEBUG", false),
	}, nil
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	asInt, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return asInt
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	asBool, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return asBool
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

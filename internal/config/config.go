// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port               string
	GoogleCloudProject string
	UseMemoryStore     bool
	SkipAuth           bool
	AllowedOrigins     []string
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		UseMemoryStore:     getEnvBool("USE_MEMORY_STORE", false),
		SkipAuth:           getEnvBool("SKIP_AUTH", false),
		AllowedOrigins:     getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}
}

// Validate checks that the configuration is usable. A Firestore-backed
// deployment needs a project ID; the memory store does not.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if !c.UseMemoryStore && c.GoogleCloudProject == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required unless USE_MEMORY_STORE=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

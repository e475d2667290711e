package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	APIAddr  string
	ViewAddr string
}

// StoreConfig selects where roster data is read from.
// A non-empty PostgresDSN takes precedence over the CSV directory.
type StoreConfig struct {
	DataDir     string
	PostgresDSN string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL         string
	AveragesTTL time.Duration
}

// ViewConfig holds settings for the roster view server
type ViewConfig struct {
	APIBaseURL string
}

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Redis       RedisConfig
	View        ViewConfig
	CORSOrigins []string
}

// LoadEnvFile loads the first .env file found among paths.
// Returns the path loaded, or "" when none was found.
func LoadEnvFile(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env", "../.env", "../../.env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			APIAddr:  getEnv("ROSTER_API_ADDR", ":8080"),
			ViewAddr: getEnv("ROSTER_VIEW_ADDR", ":8081"),
		},
		Store: StoreConfig{
			DataDir:     getEnv("ROSTER_DATA_DIR", "data"),
			PostgresDSN: getEnv("ROSTER_POSTGRES_DSN", ""),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", ""),
			AveragesTTL: getDuration("AVERAGES_CACHE_TTL", 6*time.Hour),
		},
		View: ViewConfig{
			APIBaseURL: strings.TrimRight(getEnv("ROSTER_API_URL", "http://localhost:8080"), "/"),
		},
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:8081,http://localhost:3000")),
	}
}

// Validate checks settings that have no usable default
func (c *Config) Validate() error {
	if c.Store.PostgresDSN == "" && c.Store.DataDir == "" {
		return fmt.Errorf("either ROSTER_POSTGRES_DSN or ROSTER_DATA_DIR must be set")
	}
	if c.View.APIBaseURL == "" {
		return fmt.Errorf("ROSTER_API_URL must not be empty")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration variable, falling back on parse errors
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// splitList splits a comma-separated list, dropping blanks
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

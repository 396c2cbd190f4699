package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// DefaultAllowedOrigins are the browser origins served by the validator UI.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:3000",
	"https://idea-validator-kappa.vercel.app",
	"https://idea-validator-git-main-siphos-projects-12c71fff.vercel.app",
}

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	CORS     CORSConfig
	App      AppConfig
}

type ServerConfig struct {
	Port         string
	MaxBodyBytes int64
}

type UpstreamConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int
	APIVersion string
	Timeout    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	PreviewProject string
	PreviewDomain  string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// IsProduction reports whether error details must be redacted.
func (a AppConfig) IsProduction() bool {
	return a.Environment == EnvProduction
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3001"),
			MaxBodyBytes: int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		},
		Upstream: UpstreamConfig{
			APIKey:     firstEnv("ANTHROPIC_API_KEY", "VITE_ANTHROPIC_API_KEY"),
			BaseURL:    strings.TrimRight(getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"), "/"),
			Model:      getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			MaxTokens:  getEnvAsInt("ANTHROPIC_MAX_TOKENS", 4000),
			APIVersion: getEnv("ANTHROPIC_VERSION", "2023-06-01"),
			Timeout:    getEnvAsDuration("UPSTREAM_TIMEOUT", 120*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
			PreviewProject: getEnvAllowEmpty("CORS_PREVIEW_PROJECT", "idea-validator"),
			PreviewDomain:  getEnvAllowEmpty("CORS_PREVIEW_DOMAIN", ".vercel.app"),
		},
		App: AppConfig{
			Environment: strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", EnvDevelopment))),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks structural settings. A missing API key is not an error here:
// the validate endpoint reports it per request.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("ANTHROPIC_BASE_URL is required")
	}

	if c.Upstream.MaxTokens <= 0 {
		return fmt.Errorf("ANTHROPIC_MAX_TOKENS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one explicitly set to "".
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if strings.TrimSpace(valueStr) == "" {
		return append([]string(nil), defaultValue...)
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

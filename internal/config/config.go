package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database (the fact store). Empty means the service runs storeless and
	// every resolution falls through to generation or the curated table.
	DatabaseURL string

	// Redis cache for the external proxy endpoints (optional)
	RedisURL string

	// Fact generator (OpenAI-compatible chat completions API)
	GeneratorAPIKey   string
	GeneratorEndpoint string
	GeneratorModel    string

	// News proxy
	NewsAPIKey string

	// Reference time zone used to resolve "today" consistently across callers
	Timezone string
	location *time.Location

	// Product-shaped knobs, kept configurable on purpose
	RecencyWindowDays   int // avoidance window for recently used topics
	DescriptionMinChars int // generator description length target, lower bound
	DescriptionMaxChars int // generator description length target, upper bound

	// Background daily generation
	DailyGenerateInterval time.Duration // 0 disables the background job

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "TerminalTime"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		GeneratorAPIKey:   getEnv("GENERATOR_API_KEY", ""),
		GeneratorEndpoint: getEnv("GENERATOR_ENDPOINT", "https://api.deepseek.com/v1/chat/completions"),
		GeneratorModel:    getEnv("GENERATOR_MODEL", "deepseek-chat"),

		NewsAPIKey: getEnv("NEWS_API_KEY", ""),

		Timezone: getEnv("TIMEZONE", "Europe/Madrid"),

		RecencyWindowDays:   getEnvInt("RECENCY_WINDOW_DAYS", 7),
		DescriptionMinChars: getEnvInt("DESCRIPTION_MIN_CHARS", 400),
		DescriptionMaxChars: getEnvInt("DESCRIPTION_MAX_CHARS", 500),

		DailyGenerateInterval: getEnvDuration("DAILY_GENERATE_INTERVAL", time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		SiteTitle: getEnv("SITE_TITLE", "TerminalTime"),
	}

	cfg.bindTimezone()
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("config: invalid %s=%q, using %v", key, value, fallback)
		return fallback
	}
	return d
}

func (c *Config) bindTimezone() {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to UTC", c.Timezone)
		loc = time.UTC
	}
	c.location = loc
}

// Location resolves the configured reference time zone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		c.bindTimezone()
	}
	return c.location
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasStore returns true when a fact store is configured.
func (c *Config) HasStore() bool {
	return c.DatabaseURL != ""
}

// HasGenerator returns true when the generator API is usable. A missing key
// is treated as permanent unavailability for the lifetime of the process.
func (c *Config) HasGenerator() bool {
	return c.GeneratorAPIKey != ""
}

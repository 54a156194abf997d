package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	CORS   CORSConfig
	GenAI  GenAIConfig
	Drafts DraftConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
	SeedDemo bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// GenAIConfig holds the text-generation provider configuration
type GenAIConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// DraftConfig controls how long unsaved insight drafts are kept
type DraftConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

const (
	ProviderGemini = "gemini"
	ProviderStub   = "stub"
)

func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	env := getEnv("APP_ENV", "development")
	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", strconv.FormatBool(env == "development")))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      env,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		SeedDemo: seed,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Text generation
	genaiTimeout, err := time.ParseDuration(getEnv("GENAI_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENAI_TIMEOUT: %w", err)
	}

	config.GenAI = GenAIConfig{
		Provider: getEnv("GENAI_PROVIDER", ProviderStub),
		APIKey:   getEnv("GENAI_API_KEY", ""),
		BaseURL:  getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com"),
		Model:    getEnv("GENAI_MODEL", "gemini-2.5-flash"),
		Timeout:  genaiTimeout,
	}

	// Draft sessions
	draftTTL, err := time.ParseDuration(getEnv("DRAFT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DRAFT_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("DRAFT_SWEEP_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DRAFT_SWEEP_INTERVAL: %w", err)
	}

	config.Drafts = DraftConfig{
		TTL:           draftTTL,
		SweepInterval: sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.GenAI.Provider {
	case ProviderGemini:
		if c.GenAI.APIKey == "" {
			return fmt.Errorf("GENAI_API_KEY is required when GENAI_PROVIDER=%s", ProviderGemini)
		}
	case ProviderStub:
	default:
		return fmt.Errorf("unsupported GENAI_PROVIDER %q", c.GenAI.Provider)
	}
	if c.GenAI.Timeout <= 0 {
		return fmt.Errorf("GENAI_TIMEOUT must be positive")
	}
	if c.Drafts.TTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be positive")
	}
	if c.Drafts.SweepInterval <= 0 {
		return fmt.Errorf("DRAFT_SWEEP_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

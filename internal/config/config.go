package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RendererChromedp    = "chromedp"
	RendererWKHTMLToPDF = "wkhtmltopdf"
)

// Config holds all configuration values
type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration

	// PDF rendering
	Renderer             string
	ChromePath           string
	WKHTMLToPDFPath      string
	RenderPoolSize       int
	RenderTimeout        time.Duration
	RenderStartupTimeout time.Duration
	RenderAttempts       int
	RenderScale          float64

	// optional generation audit log
	JobsDatabaseURL string

	CORSAllowOrigins string
	MaxBodyBytes     int

	// normalization
	ValidateEmail      bool
	ValidateNationalID bool
	FormatPhones       bool
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var err error
	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "3000"),
		Environment:      getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		Renderer:         strings.ToLower(getEnvOrDefault("RENDERER", RendererChromedp)),
		ChromePath:       os.Getenv("CHROME_PATH"),
		WKHTMLToPDFPath:  os.Getenv("WKHTMLTOPDF_PATH"),
		JobsDatabaseURL:  os.Getenv("JOBS_DATABASE_URL"),
		CORSAllowOrigins: getEnvOrDefault("CORS_ALLOW_ORIGINS", "*"),
	}

	if cfg.RenderPoolSize, err = getEnvAsInt("RENDER_POOL_SIZE", 2); err != nil {
		return nil, err
	}
	if cfg.RenderAttempts, err = getEnvAsInt("RENDER_ATTEMPTS", 1); err != nil {
		return nil, err
	}
	if cfg.MaxBodyBytes, err = getEnvAsInt("MAX_BODY_BYTES", 1<<20); err != nil {
		return nil, err
	}
	if cfg.RenderTimeout, err = getEnvAsDuration("RENDER_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RenderStartupTimeout, err = getEnvAsDuration("RENDER_STARTUP_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RenderScale, err = getEnvAsFloat("RENDER_SCALE", 1.0); err != nil {
		return nil, err
	}
	if cfg.ValidateEmail, err = getEnvAsBool("VALIDATE_EMAIL", true); err != nil {
		return nil, err
	}
	if cfg.ValidateNationalID, err = getEnvAsBool("VALIDATE_NATIONAL_ID", true); err != nil {
		return nil, err
	}
	if cfg.FormatPhones, err = getEnvAsBool("FORMAT_PHONES", true); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Renderer != RendererChromedp && c.Renderer != RendererWKHTMLToPDF {
		return fmt.Errorf("invalid RENDERER %q: want %s or %s", c.Renderer, RendererChromedp, RendererWKHTMLToPDF)
	}
	if c.RenderPoolSize < 1 {
		return fmt.Errorf("RENDER_POOL_SIZE must be at least 1")
	}
	if c.RenderAttempts < 1 {
		return fmt.Errorf("RENDER_ATTEMPTS must be at least 1")
	}
	if c.RenderScale < 0.1 || c.RenderScale > 2.0 {
		return fmt.Errorf("RENDER_SCALE must be between 0.1 and 2.0")
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

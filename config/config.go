package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Insight analysis service
	Insight InsightConfig

	// Event bus
	EventBus EventBusConfig

	// Feature Flags
	Features *FeatureFlags

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string

	// Timezone for lecture schedules and revision plans
	Timezone string
	Location *time.Location

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// InsightConfig holds insight API settings.
type InsightConfig struct {
	// Base URL of the insight service. Empty disables the remote client;
	// the local analyzer handles everything.
	BaseURL string

	// Authentication
	APIKey string

	// Request behavior
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// Circuit breaker settings
	CircuitBreakerThreshold   int           // failures before opening
	CircuitBreakerTimeout     time.Duration // time before half-open
	CircuitBreakerHalfOpenMax int           // max requests in half-open

	// Whether student comments are forwarded to the analyzer
	ForwardComments bool
}

// EventBusConfig holds event bus settings.
type EventBusConfig struct {
	// AsyncMode enables asynchronous handler execution
	AsyncMode bool

	// WorkerPoolSize is the number of concurrent async workers
	WorkerPoolSize int

	// EnableMetrics enables per-event-type counters
	EnableMetrics bool
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	// LogLevel: DEBUG, INFO, WARN, ERROR
	LogLevel string

	// LogCaller adds file:line to log entries
	LogCaller bool
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.App = loadAppConfig()
	cfg.Insight = loadInsightConfig()
	cfg.EventBus = loadEventBusConfig()
	cfg.Features = LoadFeatureFlags()
	cfg.Observability = loadObservabilityConfig()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	env := Environment(getEnv("APP_ENV", "development"))
	timezone := getEnv("APP_TIMEZONE", "UTC")

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return AppConfig{
		Name:            getEnv("APP_NAME", "classpulse-core"),
		Environment:     env,
		Debug:           env == EnvDevelopment || getEnvBool("APP_DEBUG", false),
		Version:         getEnv("APP_VERSION", "0.1.0"),
		Timezone:        timezone,
		Location:        loc,
		ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadInsightConfig() InsightConfig {
	return InsightConfig{
		BaseURL:                   getEnv("INSIGHT_BASE_URL", ""),
		APIKey:                    getEnv("INSIGHT_API_KEY", ""),
		RequestTimeout:            getEnvDuration("INSIGHT_REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:                getEnvInt("INSIGHT_MAX_RETRIES", 3),
		RetryBaseDelay:            getEnvDuration("INSIGHT_RETRY_BASE_DELAY", 500*time.Millisecond),
		RetryMaxDelay:             getEnvDuration("INSIGHT_RETRY_MAX_DELAY", 10*time.Second),
		CircuitBreakerThreshold:   getEnvInt("INSIGHT_CB_THRESHOLD", 3),
		CircuitBreakerTimeout:     getEnvDuration("INSIGHT_CB_TIMEOUT", 60*time.Second),
		CircuitBreakerHalfOpenMax: getEnvInt("INSIGHT_CB_HALF_OPEN_MAX", 1),
		ForwardComments:           getEnvBool("INSIGHT_FORWARD_COMMENTS", false),
	}
}

func loadEventBusConfig() EventBusConfig {
	return EventBusConfig{
		AsyncMode:      getEnvBool("EVENTBUS_ASYNC", false),
		WorkerPoolSize: getEnvInt("EVENTBUS_WORKERS", 10),
		EnableMetrics:  getEnvBool("EVENTBUS_METRICS", true),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		LogCaller: getEnvBool("LOG_CALLER", true),
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []string

	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, "APP_ENV must be development, staging or production")
	}

	if c.Insight.MaxRetries < 1 {
		errs = append(errs, "INSIGHT_MAX_RETRIES must be at least 1")
	}

	if c.EventBus.WorkerPoolSize < 1 {
		errs = append(errs, "EVENTBUS_WORKERS must be at least 1")
	}

	// A key without an endpoint is almost certainly a deployment mistake.
	if c.Insight.APIKey != "" && c.Insight.BaseURL == "" {
		errs = append(errs, "INSIGHT_API_KEY is set but INSIGHT_BASE_URL is empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	OpenRouter    OpenRouterConfig
	Classifier    ClassifierConfig
	Completion    CompletionConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TLS             struct {
		Enabled  bool
		CertFile string
		KeyFile  string
	}
}

// OpenRouterConfig holds the completion service connection settings
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// Attribution headers sent with every call (HTTP-Referer, X-Title)
	Referer string
	Title   string
}

// ClassifierConfig holds the auxiliary routing model settings
type ClassifierConfig struct {
	Model     string
	MaxTokens int
}

// CompletionConfig holds settings for the answering call
type CompletionConfig struct {
	MaxTokens    int
	SystemPrompt string // empty means the built-in prompt
}

// CORSConfig holds browser access settings
type CORSConfig struct {
	AllowedOrigins []string
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or console

	// LogFile enables a rotating file copy of the log when set
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			TLS: struct {
				Enabled  bool
				CertFile string
				KeyFile  string
			}{
				Enabled:  getEnvAsBool("TLS_ENABLED", false),
				CertFile: getEnv("TLS_CERT_FILE", "certs/cert.pem"),
				KeyFile:  getEnv("TLS_KEY_FILE", "certs/key.pem"),
			},
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Timeout: getEnvAsDuration("OPENROUTER_TIMEOUT", 60*time.Second),
			Referer: getEnv("OPENROUTER_REFERER", ""),
			Title:   getEnv("OPENROUTER_TITLE", "LLM Router"),
		},
		Classifier: ClassifierConfig{
			Model:     getEnv("CLASSIFIER_MODEL", "google/gemini-2.5-flash-lite"),
			MaxTokens: getEnvAsInt("CLASSIFIER_MAX_TOKENS", 100),
		},
		Completion: CompletionConfig{
			MaxTokens:    getEnvAsInt("COMPLETION_MAX_TOKENS", 1000),
			SystemPrompt: getEnv("COMPLETION_SYSTEM_PROMPT", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Observability: ObservabilityConfig{
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			LogFormat:     getEnv("LOG_FORMAT", "json"),
			LogFile:       getEnv("LOG_FILE", ""),
			LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
			LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	// The completion service key is required in production
	if c.IsProduction() && c.OpenRouter.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required in production")
	}

	u, err := url.Parse(c.OpenRouter.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("openrouter base URL must be absolute: %q", c.OpenRouter.BaseURL)
	}

	if c.Classifier.Model == "" {
		return fmt.Errorf("classifier model is required")
	}
	if c.Classifier.MaxTokens <= 0 {
		return fmt.Errorf("classifier max tokens must be positive")
	}
	if c.Completion.MaxTokens <= 0 {
		return fmt.Errorf("completion max tokens must be positive")
	}

	// Observability validation
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	switch c.Observability.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.Observability.LogFormat)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Headers returns the attribution headers to send with each call
func (c *OpenRouterConfig) Headers() map[string]string {
	headers := make(map[string]string)
	if c.Referer != "" {
		headers["HTTP-Referer"] = c.Referer
	}
	if c.Title != "" {
		headers["X-Title"] = c.Title
	}
	return headers
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
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
		return defaultValue
	}
	return value
}

// getEnvAsSlice splits a comma-separated value, dropping empty items
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the leads service
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Email     EmailConfig
	Payment   PaymentConfig
	Assistant AssistantConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPPort        string
	ShutdownTimeout time.Duration
}

// EmailConfig holds email delivery provider configuration
type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

// PaymentConfig holds Stripe configuration
type PaymentConfig struct {
	SecretKey     string
	WebhookSecret string
}

// AssistantConfig holds chat completion configuration
type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_DATABASE", "registrly"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Server: ServerConfig{
			HTTPPort:        getEnv("HTTP_PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("EMAIL_FROM_ADDRESS", "noreply@registrly.example"),
			FromName:     getEnv("EMAIL_FROM_NAME", "Registrly"),
		},
		Payment: PaymentConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Assistant: AssistantConfig{
			APIKey:  getEnv("ASSISTANT_API_KEY", ""),
			BaseURL: getEnv("ASSISTANT_BASE_URL", "https://api.openai.com/v1/chat/completions"),
			Model:   getEnv("ASSISTANT_MODEL", "gpt-4o-mini"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
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

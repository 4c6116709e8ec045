// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Email       EmailConfig
	Workflow    WorkflowConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	FallbackTo   string
}

// WorkflowConfig tunes the licensing workflow engine: the summary cache
// TTL and the notification retry schedule.
type WorkflowConfig struct {
	SummaryCacheTTL     int // seconds
	SummaryCacheKey     string
	NotificationQueue   string
	MaxAttempts         int
	InitialDelayMs      int
	BackoffBaseMs       int
	WorkerPollMs        int
	SubscriberBufferLen int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "media_licensing"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@medialicense.io"),
			FromName:     getEnv("FROM_NAME", "Media Licensing"),
			FallbackTo:   getEnv("LICENSING_FALLBACK_EMAIL", "licensing@example.com"),
		},
		Workflow: WorkflowConfig{
			SummaryCacheTTL:     getEnvAsInt("WORKFLOW_SUMMARY_TTL", 300),
			SummaryCacheKey:     getEnv("WORKFLOW_SUMMARY_KEY", "workflow-summary"),
			NotificationQueue:   getEnv("NOTIFICATION_QUEUE_KEY", "licensing:notifications"),
			MaxAttempts:         getEnvAsInt("NOTIFICATION_MAX_ATTEMPTS", 3),
			InitialDelayMs:      getEnvAsInt("NOTIFICATION_INITIAL_DELAY_MS", 1000),
			BackoffBaseMs:       getEnvAsInt("NOTIFICATION_BACKOFF_BASE_MS", 2000),
			WorkerPollMs:        getEnvAsInt("NOTIFICATION_WORKER_POLL_MS", 250),
			SubscriberBufferLen: getEnvAsInt("EVENT_SUBSCRIBER_BUFFER", 16),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Workflow.MaxAttempts < 1 {
		return fmt.Errorf("notification max attempts must be at least 1")
	}

	if c.Workflow.SummaryCacheTTL < 1 {
		return fmt.Errorf("workflow summary TTL must be positive")
	}

	return nil
}

// RedisAddr returns host:port for the redis client.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

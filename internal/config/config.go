package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCORSOrigins is the front-end allow-list used when CORS_ALLOWED_ORIGINS is empty
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost",
	"https://fsd-for-self-dev.github.io",
	"http://localhost:3030",
	"https://linguista.online",
}

// APIConfig holds REST API configuration
type APIConfig struct {
	Port                      string
	SecretKey                 string
	TokenTTL                  time.Duration
	EmailConfirmationRequired bool
	MigrationsPath            string
	LogLevel                  string
	CORSAllowedOrigins        []string
	// PublicURL is the externally visible API root used in e-mailed links
	PublicURL string
	Database  DatabaseConfig
	Email     EmailConfig
}

// EmailConfig holds outgoing mail settings
type EmailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// BotConfig holds Telegram bot configuration
type BotConfig struct {
	BotToken string
	APIURL   string
	RedisURL string
	DBPath   string
	DDLPath  string
	LogLevel string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string
	Engine   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// LoadAPI reads API configuration from environment variables
func LoadAPI() (*APIConfig, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	confirm, err := strconv.ParseBool(getEnv("EMAIL_CONFIRMATION_REQUIRED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_CONFIRMATION_REQUIRED: %w", err)
	}

	cfg := &APIConfig{
		Port:                      getEnv("PORT", "8000"),
		SecretKey:                 os.Getenv("SECRET_KEY"),
		TokenTTL:                  ttl,
		EmailConfirmationRequired: confirm,
		MigrationsPath:            getEnv("MIGRATIONS_PATH", "file://migrations"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins:        splitList(os.Getenv("CORS_ALLOWED_ORIGINS"), DefaultCORSOrigins),
		PublicURL:                 strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8000"), "/"),
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     getEnv("EMAIL_PORT", "587"),
			User:     os.Getenv("EMAIL_HOST_USER"),
			Password: os.Getenv("EMAIL_HOST_PASSWORD"),
			From:     os.Getenv("DEFAULT_FROM_EMAIL"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Engine:   getEnv("DB_ENGINE", "django.db.backends.postgresql"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "postgres"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
		},
	}

	// Validate required fields
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if confirm && cfg.Email.Host == "" {
		return nil, fmt.Errorf("EMAIL_HOST is required when EMAIL_CONFIRMATION_REQUIRED is set")
	}
	if cfg.Database.URL == "" && !strings.Contains(cfg.Database.Engine, "postgres") {
		return nil, fmt.Errorf("DB_ENGINE %q is not supported", cfg.Database.Engine)
	}

	return cfg, nil
}

// LoadBot reads bot configuration from environment variables
func LoadBot() (*BotConfig, error) {
	_ = godotenv.Load()

	cfg := &BotConfig{
		BotToken: os.Getenv("BOT_TOKEN"),
		APIURL:   strings.TrimRight(getEnv("API_URL", "http://localhost:8000/api/v1"), "/"),
		RedisURL: os.Getenv("REDIS_URL"),
		DBPath:   getEnv("BOT_DB_PATH", "bot.sqlite3"),
		DDLPath:  getEnv("BOT_DDL_PATH", "sqlite.ddl"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("invalid API_URL: %w", err)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
	)
}

// ConfirmationURL returns the link prefix for e-mail confirmation keys
func (c *APIConfig) ConfirmationURL() string {
	return c.PublicURL + "/api/v1/auth/registration/account-confirm-email"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string, defaultValue []string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// Upload Config
	UploadDir       string `env:"UPLOAD_DIR" envDefault:"./public/uploads"`
	UploadURLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads"`
	UploadMaxBytes  int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	DefaultUserID   string `env:"DEFAULT_USER_ID" envDefault:"user_123"`

	// Registry Config
	DefaultRadiusMeters     float64       `env:"DEFAULT_RADIUS_METERS" envDefault:"100"`
	SheetSitesRange         string        `env:"SHEET_SITES_RANGE" envDefault:"parroquia!A:D"`
	SheetVisitsRange        string        `env:"SHEET_VISITS_RANGE" envDefault:"visitas!A:F"`
	RegistryRefreshInterval time.Duration `env:"REGISTRY_REFRESH_INTERVAL" envDefault:"5m"`
	RegistryCacheTTL        time.Duration `env:"REGISTRY_CACHE_TTL" envDefault:"5m"`

	// Google Sheets
	GoogleServiceAccountEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey          string `env:"GOOGLE_PRIVATE_KEY"`
	GoogleSheetID             string `env:"GOOGLE_SHEET_ID"`

	// Session Config
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"redis"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"2h"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		RedisAddr:                 getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                 os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   getEnvAsInt("REDIS_DB", 0),
		WebhookURL:                os.Getenv("WEBHOOK_URL"),
		WebhookSecret:             os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:            getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:         getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:          getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		StatsTimeWindowMinutes:    getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
		UploadDir:                 getEnv("UPLOAD_DIR", "./public/uploads"),
		UploadURLPrefix:           getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		UploadMaxBytes:            int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
		DefaultUserID:             getEnv("DEFAULT_USER_ID", "user_123"),
		DefaultRadiusMeters:       getEnvAsFloat("DEFAULT_RADIUS_METERS", 100),
		SheetSitesRange:           getEnv("SHEET_SITES_RANGE", "parroquia!A:D"),
		SheetVisitsRange:          getEnv("SHEET_VISITS_RANGE", "visitas!A:F"),
		RegistryRefreshInterval:   getEnvAsDuration("REGISTRY_REFRESH_INTERVAL", 5*time.Minute),
		RegistryCacheTTL:          getEnvAsDuration("REGISTRY_CACHE_TTL", 5*time.Minute),
		GoogleServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		GooglePrivateKey:          os.Getenv("GOOGLE_PRIVATE_KEY"),
		GoogleSheetID:             os.Getenv("GOOGLE_SHEET_ID"),
		SessionBackend:            getEnv("SESSION_BACKEND", "redis"),
		SessionTTL:                getEnvAsDuration("SESSION_TTL", 2*time.Hour),
	}

	return cfg, nil
}

// Validate проверяет параметры, обязательные для команд, работающих с базой данных
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if c.SessionBackend != "redis" && c.SessionBackend != "memory" {
		return fmt.Errorf("SESSION_BACKEND must be \"redis\" or \"memory\", got %q", c.SessionBackend)
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// SheetsConfigured сообщает, заданы ли параметры доступа к Google Sheets
func (c *Config) SheetsConfigured() bool {
	return c.GoogleServiceAccountEmail != "" && c.GooglePrivateKey != "" && c.GoogleSheetID != ""
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Reports  ReportsConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// SMTPConfig holds outgoing mail configuration. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// StorageConfig selects and configures the report blob storage backend
type StorageConfig struct {
	Type     string // "local" or "s3"
	BasePath string
	BaseURL  string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// ReportsConfig is handed to the report delivery service at construction time.
type ReportsConfig struct {
	BaseDir        string
	CSVSubject     string
	CSVBody        string
	PDFSubject     string
	PDFBody        string
	DefaultPDFPass string
}

// JobsConfig drives the background maintenance jobs run by the API server.
type JobsConfig struct {
	StaleKeyAfter time.Duration
	ReapInterval  time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration (MailHog defaults)
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "1025"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "slipsalaryapp@payroll.com"),
		FromName: getEnv("SMTP_FROM_NAME", "Payroll"),
	}

	config.Storage = StorageConfig{
		Type:        getEnv("STORAGE_TYPE", "local"),
		BasePath:    getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
	}

	config.Reports = DefaultReportsConfig()
	config.Reports.BaseDir = getEnv("REPORTS_BASE_DIR", config.Reports.BaseDir)

	staleAfter, err := time.ParseDuration(getEnv("IDEMPOTENCY_STALE_AFTER", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_STALE_AFTER: %w", err)
	}
	reapInterval, err := time.ParseDuration(getEnv("IDEMPOTENCY_REAP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_REAP_INTERVAL: %w", err)
	}
	config.Jobs = JobsConfig{StaleKeyAfter: staleAfter, ReapInterval: reapInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// DefaultReportsConfig returns the report naming and mail text used when nothing is overridden.
func DefaultReportsConfig() ReportsConfig {
	return ReportsConfig{
		BaseDir:        "reports",
		CSVSubject:     "Monthly CSV %s",
		CSVBody:        "Attached CSV report",
		PDFSubject:     "Salary Slip %s",
		PDFBody:        "Attached PDF salary slip",
		DefaultPDFPass: "password",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.BasePath == "" {
			return fmt.Errorf("STORAGE_BASE_PATH is required for local storage")
		}
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}

	if c.Reports.BaseDir == "" {
		return fmt.Errorf("REPORTS_BASE_DIR must not be empty")
	}
	if c.Jobs.StaleKeyAfter <= 0 || c.Jobs.ReapInterval <= 0 {
		return fmt.Errorf("IDEMPOTENCY_STALE_AFTER and IDEMPOTENCY_REAP_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"8081"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SwaggerHost string `env:"SWAGGER_HOST" envDefault:"localhost:8081"`

	Database DatabaseConfig
	Import   ImportConfig
	Search   SearchConfig
	Webhook  WebhookConfig
	Session  SessionConfig
	CORS     CORSConfig
	S3Config *S3Config
}

type ImportConfig struct {
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	FileExtension string `env:"IMPORT_FILE_EXTENSION" envDefault:".csv"`
}

type SearchConfig struct {
	FuzzyThreshold  int `env:"FUZZY_THRESHOLD" envDefault:"80"`
	FuzzyLimit      int `env:"FUZZY_LIMIT" envDefault:"10"`
	DefaultPageSize int `env:"PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" envDefault:"100"`
}

type WebhookConfig struct {
	URLs    []string      `env:"WEBHOOK_URLS" envSeparator:","`
	Timeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
}

type SessionConfig struct {
	Store      string        `env:"SESSION_STORE" envDefault:"sql"` // sql or redis
	RedisURL   string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	CookieName string        `env:"SID_COOKIE_KEY" envDefault:"sid"`
	Duration   time.Duration `env:"SESSION_DURATION" envDefault:"720h"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8081"`
}

type S3Config struct {
	Enabled    bool   `env:"S3_ENABLED" envDefault:"false"`
	Region     string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKey  string `env:"S3_ACCESS_KEY"`
	SecretKey  string `env:"S3_SECRET_KEY"`
	BucketName string `env:"S3_BUCKET"`
	ServiceUrl string `env:"S3_SERVICE_URL" envDefault:"https://s3.amazonaws.com"`
	BucketUrl  string `env:"S3_BUCKET_URL"`
}

// NewConfig loads .env files that exist and then reads the environment.
func NewConfig() (*Config, error) {
	if _, err := LoadEnv([]string{".env", ".env.local"}); err != nil {
		return nil, fmt.Errorf("error loading env files: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{S3Config: &S3Config{}}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Session.Store != "sql" && c.Session.Store != "redis" {
		return fmt.Errorf("SESSION_STORE must be 'sql' or 'redis', got '%s'", c.Session.Store)
	}
	if c.Database.Driver != DriverMySQL && c.Database.Driver != DriverSQLite {
		return fmt.Errorf("DB_DRIVER must be '%s' or '%s', got '%s'", DriverMySQL, DriverSQLite, c.Database.Driver)
	}
	if c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 100 {
		return fmt.Errorf("FUZZY_THRESHOLD must be between 0 and 100, got %d", c.Search.FuzzyThreshold)
	}
	if c.Search.FuzzyLimit < 1 {
		return fmt.Errorf("FUZZY_LIMIT must be at least 1, got %d", c.Search.FuzzyLimit)
	}
	if c.Search.DefaultPageSize < 1 || c.Search.MaxPageSize < c.Search.DefaultPageSize {
		return fmt.Errorf("invalid page size settings: default %d, max %d", c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot contain '*' because session cookies are sent cross-origin")
		}
	}
	if c.S3Config.Enabled && c.S3Config.BucketName == "" {
		return fmt.Errorf("S3_BUCKET is required when S3_ENABLED is set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadEnv loads the env files that exist, returning how many were found.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

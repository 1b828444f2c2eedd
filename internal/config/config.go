package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Extraction  ExtractionConfig
	Fingerprint FingerprintConfig
	Storage     StorageConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type ExtractionConfig struct {
	OpenAIKey         string
	AnthropicKey      string
	Provider          string // "openai" or "anthropic"
	FallbackProvider  string
	Model             string
	Timeout           time.Duration
	MinTextLength     int
	MinCriticalFields int
}

type FingerprintConfig struct {
	Threshold        float64
	NumberMatchScore float64
	NameWeight       float64
}

type StorageConfig struct {
	WebhookURL string
	AuthToken  string
	RootFolder string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeoutSec, err := getEnvInt("EXTRACTION_TIMEOUT_SECONDS", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid EXTRACTION_TIMEOUT_SECONDS: %w", err)
	}

	minTextLen, err := getEnvInt("EXTRACTION_MIN_TEXT_LEN", 50)
	if err != nil {
		return nil, fmt.Errorf("invalid EXTRACTION_MIN_TEXT_LEN: %w", err)
	}

	minCritical, err := getEnvInt("EXTRACTION_MIN_CRITICAL_FIELDS", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid EXTRACTION_MIN_CRITICAL_FIELDS: %w", err)
	}

	threshold, err := getEnvFloat("FINGERPRINT_THRESHOLD", 0.85)
	if err != nil {
		return nil, fmt.Errorf("invalid FINGERPRINT_THRESHOLD: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Extraction: ExtractionConfig{
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:      getEnv("ANTHROPIC_API_KEY", ""),
			Provider:          getEnv("EXTRACTION_PROVIDER", "openai"),
			FallbackProvider:  getEnv("EXTRACTION_FALLBACK_PROVIDER", ""),
			Model:             getEnv("EXTRACTION_MODEL", "gpt-4o-mini"),
			Timeout:           time.Duration(timeoutSec) * time.Second,
			MinTextLength:     minTextLen,
			MinCriticalFields: minCritical,
		},
		Fingerprint: FingerprintConfig{
			Threshold:        threshold,
			NumberMatchScore: 0.95,
			NameWeight:       0.9,
		},
		Storage: StorageConfig{
			WebhookURL: getEnv("DRIVE_WEBHOOK_URL", ""),
			AuthToken:  getEnv("DRIVE_WEBHOOK_TOKEN", ""),
			RootFolder: getEnv("DRIVE_ROOT_FOLDER", "FleetDocs"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Storage.WebhookURL == "" {
		missing = append(missing, "DRIVE_WEBHOOK_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

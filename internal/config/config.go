// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is read once at startup and injected into every component.
// Nothing reads the environment after LoadFromEnv returns.
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	ResendAPIKey    string
	ResendFromEmail string

	AdminURL    string
	FrontendURL string

	MagicLinkTTL time.Duration
	SessionTTL   time.Duration
	JWTSecret    string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

func LoadFromEnv() Config {
	return Config{
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "8787"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),

		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		ResendFromEmail: os.Getenv("RESEND_FROM_EMAIL"),

		AdminURL:    getenv("ADMIN_URL", "http://localhost:5173"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:4321"),

		MagicLinkTTL: time.Duration(getenvInt("MAGIC_LINK_EXPIRATION_MINUTES", 15)) * time.Minute,
		SessionTTL:   time.Duration(getenvInt("JWT_EXPIRATION_DAYS", 7)) * 24 * time.Hour,
		JWTSecret:    os.Getenv("JWT_SECRET"),

		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    getenv("S3_REGION", "auto"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
	}
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

func (c Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	Environment string

	DBDriver   string // sqlite, postgres or mysql
	DBName     string // database name, or file path for sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	JWTKey    string
	TokenTTL  time.Duration
	SaltRound int

	CORSOrigins string

	SendGridAPIKey  string
	EmailSender     string
	EmailSenderName string
}

// ErrMissingJWTKey is returned by Load when no signing secret is configured.
var ErrMissingJWTKey = errors.New("config: JWT_SECRET_KEY must be set")

// Load reads configuration from a .env file (if present) and the environment.
// It fails when a required value has no usable default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: strings.ToLower(getEnv("APP_ENV", "development")),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBName:     getEnv("DB_NAME", "dormaid.sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", ""),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTKey:    os.Getenv("JWT_SECRET_KEY"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 7*24)) * time.Hour,
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@dormaid.local"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "DormAid"),
	}

	if cfg.JWTKey == "" {
		return nil, ErrMissingJWTKey
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, errors.New("config: DB_DRIVER must be one of sqlite, postgres, mysql")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("config: TOKEN_TTL_HOURS must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether internal error detail must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

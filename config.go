package main

import (
	"fmt"
	"os"
	"strings"
)

// Config carries every process-wide setting. It is built once at startup and
// handed to the constructors that need it; nothing reads the environment
// after LoadConfig returns.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
}

type ServerConfig struct {
	Port       string
	SiteOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type AuthConfig struct {
	// PasswordSalt and PasswordHash together define the single admin
	// credential: hex(sha256(salt + password)) must equal PasswordHash.
	PasswordSalt string
	PasswordHash string
	TokenSecret  string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnv("PORT", "8080"),
			SiteOrigin: getEnv("SITE_ORIGIN", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "rsvp"),
		},
		Auth: AuthConfig{
			PasswordSalt: getEnv("ADMIN_PASSWORD_SALT", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TokenSecret:  getEnv("TOKEN_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("NOTIFY_FROM", ""),
			To:       getEnv("NOTIFY_TO", ""),
		},
	}

	var missing []string
	if cfg.Auth.PasswordSalt == "" {
		missing = append(missing, "ADMIN_PASSWORD_SALT")
	}
	if cfg.Auth.PasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD_HASH")
	}
	if cfg.Auth.TokenSecret == "" {
		missing = append(missing, "TOKEN_SECRET")
	}
	if cfg.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

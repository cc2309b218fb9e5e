package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
	defaultUploadDir    = "./uploads"
	defaultMailAPIURL   = "https://api.brevo.com/v3/smtp/email"
	defaultHTTPAddr     = ":8080"
)

// RuntimeConfig carries everything the API process reads from the
// environment. Mail credentials live here and are handed to the mailer at
// construction; nothing global.
type RuntimeConfig struct {
	AppEnv       string
	HTTPAddr     string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration
	UploadDir    string

	MailAPIURL     string
	MailAPIKey     string
	MailSenderName string
	MailSenderAddr string
}

func Load() (*RuntimeConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file, reading from process environment")
	}

	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.UploadDir = getEnv("UPLOAD_DIR", defaultUploadDir)

	cfg.MailAPIURL = getEnv("MAIL_API_URL", defaultMailAPIURL)
	cfg.MailAPIKey = strings.TrimSpace(os.Getenv("MAIL_API_KEY"))
	cfg.MailSenderName = getEnv("MAIL_SENDER_NAME", "FDRS")
	cfg.MailSenderAddr = strings.TrimSpace(os.Getenv("MAIL_SENDER_ADDR"))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

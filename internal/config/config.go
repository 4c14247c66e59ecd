package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBSSLMode     string
	JWTSecret     string
	Port          string
	Env           string
	EventImageDir string
	PaymentQRDir  string
	TicketQRDir   string
	MaxUploadSize int64
	LogLevel      string

	// RabbitMQ registration change channel. Empty URL disables publishing
	// and the live counter worker.
	RabbitURL      string
	RabbitExchange string
	RabbitQueue    string

	// SMTP for one-time login codes. Empty host disables delivery
	// (codes are still issued and logged in development).
	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPPass string
}

func NewConfigFromEnv() (*Config, error) {
	maxUploadSize, _ := strconv.ParseInt(getenv("MAX_UPLOAD_SIZE", "10485760"), 10, 64)

	cfg := &Config{
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPass:        getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "festivaldb"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		Port:          getenv("PORT", "3000"),
		Env:           getenv("ENV", "development"),
		EventImageDir: getenv("EVENT_IMAGE_DIR", "./uploads/event-images"),
		PaymentQRDir:  getenv("PAYMENT_QR_DIR", "./uploads/payment-qrcodes"),
		TicketQRDir:   getenv("TICKET_QR_DIR", "./uploads/ticket-qrcodes"),
		MaxUploadSize: maxUploadSize,
		LogLevel:      getenv("LOG_LEVEL", "info"),

		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "registration-changes"),
		RabbitQueue:    getenv("RABBIT_QUEUE", "registration-counter"),

		SMTPHost: getenv("SMTP_HOST", ""),
		SMTPPort: getenv("SMTP_PORT", "587"),
		SMTPFrom: getenv("SMTP_FROM", ""),
		SMTPPass: getenv("SMTP_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Billing
	TasaInteresMora decimal.Decimal // annual late-interest rate over carried debt
	UmbralMorosidad int             // pending receipts beyond which an owner is moroso
	DiasGracia      int             // age in days of the oldest pending receipt before moroso

	// S3 Storage (payment proof uploads)
	S3 S3Config
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	tasa, err := decimal.NewFromString(getEnv("TASA_INTERES_MORA", "0.03"))
	if err != nil {
		return nil, fmt.Errorf("TASA_INTERES_MORA must be a decimal: %w", err)
	}

	umbral, err := strconv.Atoi(getEnv("UMBRAL_MOROSIDAD", "3"))
	if err != nil {
		return nil, fmt.Errorf("UMBRAL_MOROSIDAD must be an integer: %w", err)
	}

	diasGracia, err := strconv.Atoi(getEnv("DIAS_GRACIA", "90"))
	if err != nil {
		return nil, fmt.Errorf("DIAS_GRACIA must be an integer: %w", err)
	}

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
		Env:             getEnv("ENV", "development"),
		TasaInteresMora: tasa,
		UmbralMorosidad: umbral,
		DiasGracia:      diasGracia,
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "gestion-inmuebles-comprobantes"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.TasaInteresMora.IsNegative() {
		return fmt.Errorf("TASA_INTERES_MORA cannot be negative")
	}
	if c.UmbralMorosidad < 0 {
		return fmt.Errorf("UMBRAL_MOROSIDAD cannot be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

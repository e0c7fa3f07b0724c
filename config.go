package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Port      string
	Env       string
	MongoURI  string
	MongoDB   string
	RedisURL  string
	JWTSecret string

	// UPI merchant identity used on generated payment requests.
	MerchantUpiID string
	MerchantName  string
	MerchantCode  string

	// How long pending payment transactions are retained in Redis.
	PaymentTTL time.Duration
}

// LoadConfig loads environment variables into a Config struct. A local .env
// file is applied first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGODB_NAME", "storefront"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MerchantUpiID: getEnv("MERCHANT_UPI_ID", "merchant@paytm"),
		MerchantName:  getEnv("MERCHANT_NAME", "Storefront"),
		MerchantCode:  getEnv("MERCHANT_CODE", "5411"),
	}

	ttlMinutes, err := strconv.Atoi(getEnv("PAYMENT_TTL_MINUTES", "15"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("PAYMENT_TTL_MINUTES must be a positive integer")
	}
	cfg.PaymentTTL = time.Duration(ttlMinutes) * time.Minute

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	AppURL    string
	DBDriver  string
	DBName    string
	JWTKey    string
	SaltRound int

	SendgridApiKey string
	EmailSender    string

	PaymentApiURL        string // Payment provider base URL
	PaymentApiKey        string // Payment provider API key
	PaymentWebhookSecret string // Secret used to verify webhook signatures
	CheckoutTTLMinutes   int    // Pending checkout sessions older than this expire

	UploadDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		AppURL:    getEnv("APP_URL", "http://localhost:3000"),
		DBDriver:  getEnv("DB_DRIVER", "postgres"),
		DBName:    getEnv("DB_NAME", "lms"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@localhost"),

		PaymentApiURL:        getEnv("PAYMENT_API_URL", "https://api.sandbox.credpay.io/v1/"),
		PaymentApiKey:        getEnv("PAYMENT_API_KEY", "defaultSecret"),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", "defaultSecret"),
		CheckoutTTLMinutes:   getEnvInt("CHECKOUT_TTL_MINUTES", 60),

		UploadDir: getEnv("UPLOAD_DIR", "public/uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentWebhookSecret == "defaultSecret" {
		log.Println("Warning: Using default PAYMENT_WEBHOOK_SECRET. Update it in your environment.")
	}
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

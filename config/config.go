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
	JWTKey    string
	SaltRound int

	// Time-tracking rules
	DailyCapHours    float64 // max decimal hours creditable per participant-local day
	DefaultTimezone  string  // fallback when a user has no stored timezone
	MaxArticleSecs   int     // ceiling on seconds credited to a single article
	ReflectionMinLen int     // minimum characters for an accepted reflection

	EmailSender string
	Password    string // SMTP Password

	PaymentApiURL string // hosted checkout provider base URL
	PaymentApiKey string // secret key for session lookups
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DailyCapHours:    getEnvFloat("DAILY_CAP_HOURS", 8.0),
		DefaultTimezone:  getEnv("DEFAULT_TIMEZONE", "America/Chicago"),
		MaxArticleSecs:   getEnvInt("MAX_ARTICLE_SECONDS", 7200),
		ReflectionMinLen: getEnvInt("REFLECTION_MIN_LENGTH", 50),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		PaymentApiURL: getEnv("PAYMENT_API_URL", "https://api.checkout-provider.com/v1/"),
		PaymentApiKey: getEnv("PAYMENT_API_KEY", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentApiKey == "defaultSecret" {
		log.Println("Warning: Using default PAYMENT_API_KEY. Checkout verification will fail.")
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

// getEnvFloat retrieves an environment variable as a float or returns the default float value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}

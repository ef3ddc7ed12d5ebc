package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	// BcryptCost selects the password hashing strength for newly created
	// hashes. A cost of 0 switches to the weak test hasher; existing hashes
	// keep verifying regardless of the current setting.
	BcryptCost int

	SessionExpiry  time.Duration
	SessionRenewal time.Duration

	PruneSchedule string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:        getEnv("API_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "user"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "authd_db"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 12),
		SessionExpiry:  time.Duration(getEnvAsInt("SESSION_EXPIRY_DAYS", 90)) * 24 * time.Hour,
		SessionRenewal: time.Duration(getEnvAsInt("SESSION_RENEWAL_HOURS", 24)) * time.Hour,
		PruneSchedule:  getEnv("PRUNE_SCHEDULE", "@hourly"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

package config

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	MONGOSTRING   string
	PASETO_SECRET string

	AdminUsername string
	AdminPassword string

	// Geofence: the single allowed site and the admission radius around it.
	AllowedLat    float64
	AllowedLon    float64
	MaxDistanceKm float64

	// All "now" reads use this zone; no per-record timezone is stored.
	Timezone string
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	// Dev fallback only; always set PASETO_SECRET in real deployments.
	secretBase64 := getEnv("PASETO_SECRET", "YWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWE=")

	secretBytes, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		log.Fatalf("PASETO_SECRET in .env is not a valid Base64 URL-encoded string: %v", err)
	}

	if len(secretBytes) != 32 {
		log.Fatalf("PASETO_SECRET (decoded) must be exactly 32 bytes long. Current length: %d", len(secretBytes))
	}

	return &AppConfig{
		Port:          getEnv("PORT", "3000"),
		MONGOSTRING:   getEnv("MONGOSTRING", ""),
		PASETO_SECRET: secretBase64,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AllowedLat:    getEnvFloat("ALLOWED_LAT", 12.8324706),
		AllowedLon:    getEnvFloat("ALLOWED_LON", 80.2286148),
		MaxDistanceKm: getEnvFloat("MAX_DISTANCE_KM", 1.0),
		Timezone:      getEnv("TIMEZONE", "Asia/Kolkata"),
	}
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("%s must be a valid number, got %q: %v", key, value, err)
	}
	return parsed
}

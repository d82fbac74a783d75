package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Logging
	LogLevel  string // debug, info, warn, error
	LogPretty bool   // human readable console output
	LogFile   string // optional extra output file

	// Rate limiting
	RateLimitType   string // "memory" or "redis"
	RateLimit       int    // number of requests allowed per window
	RateLimitWindow int    // window length in seconds

	// Datastore configuration
	DatastoreType string // "csv", "mysql", or "redis"
	StoresPath    string // stores CSV, also the Redis seed file
	// Promotions CSV for the csv datastore and the Redis seed. The server
	// runs without promotions when the file cannot be read.
	PromotionsPath string

	// Province reference table. Empty means the embedded copy.
	ProvincesPath string

	// MySQL configuration
	MySQLDSN string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Reverse geocoding (Nominatim)
	GeocoderEnabled   bool
	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		LogFile:   getEnv("LOG_FILE", ""),

		RateLimitType:   getEnv("RATE_LIMITER_TYPE", "memory"),
		RateLimit:       getEnvAsInt("RATE_LIMIT", 10),
		RateLimitWindow: getEnvAsInt("RATE_LIMIT_WINDOW", 1),

		DatastoreType:  getEnv("DATASTORE_TYPE", "csv"),
		StoresPath:     getEnv("STORES_PATH", "./data/stores.csv"),
		PromotionsPath: getEnv("PROMOTIONS_PATH", "./data/promotions.csv"),
		ProvincesPath:  getEnv("PROVINCES_PATH", ""),

		MySQLDSN: getEnv("MYSQL_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		GeocoderEnabled:   getEnvAsBool("GEOCODER_ENABLED", true),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "confesercenti-vallo-app/1.0"),
		GeocoderTimeout:   getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
	}
}

// RequestsPerSecond is the effective rate limit, e.g. 10 per 5s = 2.0.
// A non-positive window counts as one second; a non-positive limit is an
// error, since it would reject every request.
func (c *Config) RequestsPerSecond() (float64, error) {
	if c.RateLimit <= 0 {
		return 0, fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	window := c.RateLimitWindow
	if window <= 0 {
		window = 1
	}
	return float64(c.RateLimit) / float64(window), nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer.
// Returns default if not set or invalid.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool accepts anything strconv.ParseBool does.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration reads values like "10s" or "1500ms".
// A bare integer is taken as seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

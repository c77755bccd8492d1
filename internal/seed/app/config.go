package app

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreDDB    = "ddb"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Dealers         int    // Number of dealers to generate, 0 picks 5 to 9 (default: 0)
	RandomSeed      uint64 // Generator seed, 0 uses the clock (default: 0)
	CreateContainer bool   // Create the document container (default: true)
	InsertData      bool   // Write generated documents to the store (default: true)
	Publish         bool   // Publish generated documents to the platform API (default: false)
	Concurrency     int    // Dealers published at once (default: 4)

	StoreBackend string // Document store: sqlite or ddb (default: sqlite)
	SQLiteFile   string // SQLite database file (default: ./seed.db)
	DDBTable     string // DynamoDB table (default: RentalReservations)
	DDBEndpoint  string // Optional: DynamoDB endpoint override, e.g. DynamoDB Local

	CacheBackend  string // Token cache: memory or redis (default: memory)
	RedisAddr     string // Redis address (default: localhost:6379)
	RedisPassword string // Optional: Redis password
	RedisDB       int    // Redis database number (default: 0)

	PlatformTimeout time.Duration // Per-call timeout for platform and identity calls (default: 30s)
	PlatformRPS     float64       // Client-side rate limit for platform calls, 0 disables (default: 0)
	ConfigFile      string        // Optional: YAML file with PlatformApiUrl and BaseAddressUrl

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
}

// LoadConfig reads the configuration from the environment, after loading the
// file named by ENV_FILE (default .env) when it exists.
func LoadConfig() Config {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("env file not loaded", "file", envFile, "error", err)
	}

	return Config{
		Dealers:         getEnvIntOrDefault("SEED_DEALERS", 0),
		RandomSeed:      getEnvUintOrDefault("SEED_RANDOM_SEED", 0),
		CreateContainer: getEnvBoolOrDefault("SEED_CREATE_CONTAINER", true),
		InsertData:      getEnvBoolOrDefault("SEED_INSERT_DATA", true),
		Publish:         getEnvBoolOrDefault("SEED_PUBLISH", false),
		Concurrency:     getEnvIntOrDefault("SEED_CONCURRENCY", 4),

		StoreBackend: getEnvOrDefault("STORE_BACKEND", StoreSQLite),
		SQLiteFile:   getEnvOrDefault("SQLITE_FILE", "seed.db"),
		DDBTable:     getEnvOrDefault("DDB_TABLE", "RentalReservations"),
		DDBEndpoint:  os.Getenv("DDB_ENDPOINT"),

		CacheBackend:  getEnvOrDefault("CACHE_BACKEND", CacheMemory),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		PlatformTimeout: getEnvDurationOrDefault("PLATFORM_TIMEOUT", 30*time.Second),
		PlatformRPS:     getEnvFloatOrDefault("PLATFORM_RPS", 0),
		ConfigFile:      os.Getenv("CONFIG_FILE"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
		return uintValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1m", "30s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

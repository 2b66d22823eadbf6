package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP                string // Host IP for the server
	RESTPort              int    // Port for the REST API
	GinMode               string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret             string // Secret key for signing run tokens
	JWTIssuer             string // Issuer claim for run tokens
	RunTokenTTLMinutes    int    // Lifetime of a run token
	BoardSize             int    // Side length of generated boards (odd)
	GenMaxAttempts        int    // Generation attempts before accepting an unverified board
	RedisAddr             string // Redis address for the leaderboard; empty disables it
	RedisPassword         string // Redis password
	LeaderboardKey        string // Redis key of the leaderboard sorted set
	LeaderboardTTLSeconds int    // Expiry of the leaderboard key, 0 keeps it forever
	DBHost                string // Hostname or IP address for the database; empty disables run history
	DBPort                int    // Port number for the database
	DBUser                string // Username for the database
	DBPassword            string // Password for the database
	DBName                string // Name of the database
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:                mustGetEnv("HOST_IP"),
		RESTPort:              mustGetEnvAsInt("REST_PORT"),
		GinMode:               getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:             mustGetEnv("JWT_SECRET"),
		JWTIssuer:             mustGetEnv("JWT_ISSUER"),
		RunTokenTTLMinutes:    getEnvAsIntWithDefault("RUN_TOKEN_TTL_MINUTES", 120),
		BoardSize:             getEnvAsIntWithDefault("BOARD_SIZE", 101),
		GenMaxAttempts:        getEnvAsIntWithDefault("GEN_MAX_ATTEMPTS", 10),
		RedisAddr:             getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:         getEnvWithDefault("REDIS_PASSWORD", ""),
		LeaderboardKey:        getEnvWithDefault("LEADERBOARD_KEY", "depths:leaderboard"),
		LeaderboardTTLSeconds: getEnvAsIntWithDefault("LEADERBOARD_TTL_SECONDS", 0),
		DBHost:                getEnvWithDefault("DB_HOST", ""),
		DBPort:                getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:                getEnvWithDefault("DB_USER", ""),
		DBPassword:            getEnvWithDefault("DB_PASS", ""),
		DBName:                getEnvWithDefault("DB_NAME", "depths"),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers; unparsable values are fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP              string // Host IP for the server
	RESTPort            int    // Port for the REST API
	GinMode             string // Mode for the Gin framework (e.g., release, debug, test)
	DBHost              string // Hostname or IP address for the database
	DBPort              int    // Port number for the database
	DBUser              string // Username for the database
	DBPassword          string // Password for the database
	DBName              string // Name of the database
	RedisAddr           string // Address (host:port) of the Redis server
	RedisPassword       string // Password for the Redis server
	LeaderboardTTL      int    // Seconds a leaderboard key lives without updates
	JWTSecret           string // Secret key for JWT signing
	JWTIssuer           string // Issuer claim for JWTs
	ScreenWidth         int    // Width of the play area in pixels
	ScreenHeight        int    // Height of the play area in pixels
	TileSize            int    // Side of a maze cell in pixels
	WallThickness       int    // Thickness of a wall rectangle in pixels
	ExtraPassagePercent int    // Per cell chance of an extra passage after carving
	RoundSeconds        int    // Length of a round
	FoodCount           int    // Food items placed in a round
	RecordBackend       string // Where the best score lives: mongo or file
	RecordFile          string // File holding the best score for the file backend
	MaxMazeDimension    int    // Largest cols or rows accepted by the API
}

// Cols returns the number of maze columns that fit the screen.
func (c Config) Cols() int {
	return c.ScreenWidth / c.TileSize
}

// Rows returns the number of maze rows that fit the screen.
func (c Config) Rows() int {
	return c.ScreenHeight / c.TileSize
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

	cfg := Config{
		HostIP:              getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:            getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:             getEnvWithDefault("GIN_MODE", "release"),
		DBHost:              mustGetEnv("DB_HOST"),
		DBPort:              mustGetEnvAsInt("DB_PORT"),
		DBUser:              mustGetEnv("DB_USER"),
		DBPassword:          mustGetEnv("DB_PASS"),
		DBName:              mustGetEnv("DB_NAME"),
		RedisAddr:           mustGetEnv("REDIS_ADDR"),
		RedisPassword:       getEnvWithDefault("REDIS_PASS", ""),
		LeaderboardTTL:      getEnvAsIntWithDefault("LEADERBOARD_TTL", 7*24*60*60),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		JWTIssuer:           mustGetEnv("JWT_ISSUER"),
		ScreenWidth:         getEnvAsIntWithDefault("SCREEN_WIDTH", 1202),
		ScreenHeight:        getEnvAsIntWithDefault("SCREEN_HEIGHT", 902),
		TileSize:            getEnvAsIntWithDefault("TILE_SIZE", 100),
		WallThickness:       getEnvAsIntWithDefault("WALL_THICKNESS", 4),
		ExtraPassagePercent: getEnvAsIntWithDefault("EXTRA_PASSAGE_PERCENT", 25),
		RoundSeconds:        getEnvAsIntWithDefault("ROUND_SECONDS", 60),
		FoodCount:           getEnvAsIntWithDefault("FOOD_COUNT", 3),
		RecordBackend:       getEnvWithDefault("RECORD_BACKEND", "mongo"),
		RecordFile:          getEnvWithDefault("RECORD_FILE", "record"),
		MaxMazeDimension:    getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 64),
	}

	if cfg.TileSize <= 0 || cfg.Cols() < 1 || cfg.Rows() < 1 {
		log.Fatalf("[APP] [FATAL] Screen %dx%d cannot hold tiles of size %d", cfg.ScreenWidth, cfg.ScreenHeight, cfg.TileSize)
	}

	return cfg
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

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
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

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/todo-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

const defaultJWTSecret = "default-secret-key-change-me"

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBLogLevel    string
	JWTSecret     string
	TokenTTL      time.Duration
	LoginTokenTTL time.Duration
	BcryptCost    int
	ServerPort    int
	GinMode       string

	// CORS
	CORSAllowedOrigins []string

	// Redis list cache; disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

func Load() *Config {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "todo-app-db"),
		DBLogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:      getEnvDuration("TOKEN_TTL", constants.DefaultTokenTTL),
		LoginTokenTTL: getEnvDuration("LOGIN_TOKEN_TTL", constants.LoginTokenTTL),
		BcryptCost:    getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		GinMode:       getEnv("GIN_MODE", "debug"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 30*time.Second),
	}
}

// Validate reports settings the server cannot start with.
// The built-in JWT secret is refused in release mode.
func (c *Config) Validate() error {
	if c.JWTSecret == "" || (c.JWTSecret == defaultJWTSecret && c.GinMode == "release") {
		return errors.New("JWT_SECRET is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return errors.New("BCRYPT_COST is out of range")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	var values []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

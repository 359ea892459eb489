package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ServerPort         string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	JWTSecret          string
	TokenExpiration    int64
	RedisHost          string
	RedisPort          int64
	RedisPassword      string
	RedisDB            int64
	LoginFailLimit     int64
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),          // Default development
		LogLevel:           getLogLevel(),                             // Default INFO
		ServerPort:         getEnv("SERVER_PORT", "8080"),             // Default 8080
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),           // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),    // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "ems_user"),     // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "ems_pass"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "ems_db"),   // Default database name
		JWTSecret:          getEnv("JWT_SECRET", ""),                  // No default, startup fails without it
		TokenExpiration:    getEnvAsInt64("TOKEN_EXPIRATION", 604800), // Default 7 days
		RedisHost:          getEnv("REDIS_HOST", "redis"),             // Default redis
		RedisPort:          getEnvAsInt64("REDIS_PORT", 6379),         // Default 6379
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),              // Default empty
		RedisDB:            getEnvAsInt64("REDIS_DATABASE", 0),        // Default 0
		LoginFailLimit:     getEnvAsInt64("LOGIN_FAIL_LIMIT", 20),     // Default 20 failed attempts per day, 0 disables
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

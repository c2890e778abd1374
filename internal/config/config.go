package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	DBDriver         string
	DatabaseDSN      string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	ElectionTimezone string
	LogLevel         string
	LogFormat        string
	SwaggerHost      string
	ResetDB          bool
	CORSOrigins      []string
	AdminName        string
	AdminEmail       string
	AdminPassword    string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:      getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/ballotbox?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		ElectionTimezone: getEnv("ELECTION_TIMEZONE", "Asia/Colombo"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		ResetDB:          getEnvBool("RESET_DB", false),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"*"}),
		AdminName:        getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

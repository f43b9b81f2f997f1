package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	LogLevel    string
	FrontendURL string
	// CSV Upload Configuration
	UploadMaxSizeBytes int64
	UploadMaxRows      int
	ErrorReportDir     string
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development, ignored elsewhere
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// CSV Upload Configuration
		UploadMaxSizeBytes: getEnvInt64("UPLOAD_MAX_SIZE_BYTES", 5*1024*1024), // 5 MiB
		UploadMaxRows:      getEnvInt("UPLOAD_MAX_ROWS", 10000),
		ErrorReportDir:     getEnv("ERROR_REPORT_DIR", os.TempDir()),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvInt64 returns a 64-bit integer environment variable or fallback if not set/invalid
func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}

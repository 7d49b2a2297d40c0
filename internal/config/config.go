package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// MaxSpanDays bounds the forecast window length accepted from any source.
const MaxSpanDays = 180

const (
	defaultSpanDays  = 30
	defaultStaleDays = 7
	defaultWorkers   = 4
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath    string
	LogDir      string
	DefaultSpan int
	StaleDays   int
	Workers     int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return fromEnv(exeDir)
}

func fromEnv(exeDir string) (*AppConfig, error) {
	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))

	span := getEnvInt("RETURNLAG_DEFAULT_SPAN", defaultSpanDays)
	if span < 1 || span > MaxSpanDays {
		return nil, fmt.Errorf("RETURNLAG_DEFAULT_SPAN must be between 1 and %d, got %d", MaxSpanDays, span)
	}

	staleDays := getEnvInt("RETURNLAG_STALE_DAYS", defaultStaleDays)
	if staleDays < 0 {
		return nil, fmt.Errorf("RETURNLAG_STALE_DAYS must not be negative, got %d", staleDays)
	}

	workers := getEnvInt("RETURNLAG_WORKERS", defaultWorkers)
	if workers < 1 {
		log.Warn().Int("workers", workers).Msg("RETURNLAG_WORKERS below 1, using 1")
		workers = 1
	}

	cfg := &AppConfig{
		DataPath:    dataPath,
		LogDir:      logDir,
		DefaultSpan: span,
		StaleDays:   staleDays,
		Workers:     workers,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}

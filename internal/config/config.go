package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	// DataDir holds static assets: dialogues/ and locales/.
	DataDir string

	// RedisURL is the inventory backend. Empty means in-memory inventory
	// (development / tests).
	RedisURL string

	// PlayerID namespaces inventory keys in Redis.
	PlayerID string

	// Locale is the preferred display language (BCP 47).
	Locale string

	// InteractionCooldown debounces NPC interaction after a conversation
	// ends.
	InteractionCooldown time.Duration
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		LogLevel:            parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DataDir:             getEnv("DATA_DIR", "./data"),
		RedisURL:            getEnv("REDIS_URL", ""),
		PlayerID:            getEnv("PLAYER_ID", "player"),
		Locale:              getEnv("LOCALE", "en"),
		InteractionCooldown: time.Duration(getEnvInt("INTERACTION_COOLDOWN_MS", 500)) * time.Millisecond,
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

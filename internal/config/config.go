package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBPath       string     // TASKBOARD_DB, default "taskboard.db"
	LogLevel     slog.Level // TASKBOARD_LOG_LEVEL, default info
	KafkaBrokers []string   // TASKBOARD_KAFKA_BROKERS, comma separated, optional
	KafkaTopic   string     // TASKBOARD_KAFKA_TOPIC, default "taskboard.seed"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DBPath:       envOr("TASKBOARD_DB", "taskboard.db"),
		LogLevel:     parseLevel(os.Getenv("TASKBOARD_LOG_LEVEL")),
		KafkaBrokers: splitList(os.Getenv("TASKBOARD_KAFKA_BROKERS")),
		KafkaTopic:   envOr("TASKBOARD_KAFKA_TOPIC", "taskboard.seed"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

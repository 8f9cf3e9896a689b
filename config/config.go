package config

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type AppConfig struct {
	Port     string
	DBDriver string
	DBPath   string
	MongoURI string
	MongoDB  string
	LogLevel string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:     get("PORT", "5000"),
		DBDriver: strings.ToLower(get("DB_DRIVER", DriverSQLite)),
		DBPath:   get("DB_PATH", "placement.db"),
		MongoURI: get("MONGO_URI", ""),
		MongoDB:  get("MONGO_DB", "placement"),
		LogLevel: strings.ToLower(get("LOG_LEVEL", "info")),
	}
	log.Printf("[cfg] port=%s driver=%s db_path=%s mongo_db=%s mongo_uri_set=%t log_level=%s",
		cfg.Port, cfg.DBDriver, cfg.DBPath, cfg.MongoDB, cfg.MongoURI != "", cfg.LogLevel)
	return cfg
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
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

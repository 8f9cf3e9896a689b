package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PATH", "MONGO_URI", "MONGO_DB", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "placement.db", cfg.DBPath)
	assert.Equal(t, "placement", cfg.MongoDB)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, AppConfig{LogLevel: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, AppConfig{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, AppConfig{LogLevel: "chatty"}.SlogLevel())
}

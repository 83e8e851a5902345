package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "cookie", cfg.SessionStore)
	assert.Equal(t, "sqlite", cfg.StateDriver)
	assert.Zero(t, cfg.MutationTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KANBAN_API_URL", "https://api.example.com")
	t.Setenv("KANBAN_MUTATION_TIMEOUT", "15s")
	t.Setenv("SESSION_STORE", "redis")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.MutationTimeout)
	assert.Equal(t, "redis", cfg.SessionStore)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("KANBAN_ADDR", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanban.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://board:8000\nlog_level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://board:8000", cfg.APIBaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SESSION_STORE", "memcached")
	_, err := Load("")
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "info"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "WARNING"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "verbose"}).SlogLevel())
}

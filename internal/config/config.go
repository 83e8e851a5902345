package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	APIBaseURL string `yaml:"api_base_url" env:"KANBAN_API_URL" env-default:"http://localhost:8000"`
	Addr       string `yaml:"addr" env:"KANBAN_ADDR" env-default:":8080"`
	GinMode    string `yaml:"gin_mode" env:"GIN_MODE" env-default:"debug"`
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	SessionStore  string `yaml:"session_store" env:"SESSION_STORE" env-default:"cookie"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`
	RedisHost     string `yaml:"redis_host" env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `yaml:"redis_port" env:"REDIS_PORT" env-default:"6379"`

	// HTTPTimeout bounds a single request to the board API. Zero disables it.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"KANBAN_HTTP_TIMEOUT" env-default:"0s"`
	// MutationTimeout bounds a move/delete/create round trip, after which the
	// task is unlocked and the board reloaded. Zero disables it.
	MutationTimeout time.Duration `yaml:"mutation_timeout" env:"KANBAN_MUTATION_TIMEOUT" env-default:"0s"`

	StateDriver  string `yaml:"state_driver" env:"KANBAN_STATE_DRIVER" env-default:"sqlite"`
	StateDSN     string `yaml:"state_dsn" env:"KANBAN_STATE_DSN" env-default:"kanban-state.db"`
	StateProfile string `yaml:"state_profile" env:"KANBAN_PROFILE" env-default:"default"`
}

// Load reads the YAML file at path, then applies environment overrides. An
// empty path or a missing file reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		err := cleanenv.ReadConfig(path, &cfg)
		if err == nil {
			return &cfg, cfg.validate()
		}
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("cannot read config %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read env: %w", err)
	}
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported session store %q", c.SessionStore)
	}
	if c.HTTPTimeout < 0 || c.MutationTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Ficore Accounting"`
		Language string `envconfig:"APP_LANGUAGE" default:"en"`
	}

	Web struct {
		Port           int      `envconfig:"PORT" default:"3000"`
		AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	}

	Backend struct {
		URL     string        `envconfig:"BACKEND_URL" default:"http://localhost:5000"`
		Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`
	}

	Categories struct {
		// Path to a YAML keyword table. Empty means the built-in table.
		RulesFile string `envconfig:"CATEGORY_RULES_FILE"`
	}

	Log struct {
		File  string `envconfig:"LOG_FILE"`
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

// BackendURL returns the backend base URL without a trailing slash.
func (c *Config) BackendURL() string {
	return strings.TrimRight(c.Backend.URL, "/")
}

// LogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

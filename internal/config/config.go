// Package config loads smartban settings from an optional config file,
// environment variables and the legacy API key file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pable/go-cs-smartban/internal/aggregator"
	"github.com/pable/go-cs-smartban/internal/collector"
	"github.com/pable/go-cs-smartban/internal/faceit"
)

// ErrNoAPIKey is returned by RequireAPIKey when no key was configured.
var ErrNoAPIKey = errors.New("FACEIT API key not found: set FACEIT_API_KEY or create ~/.smartban/faceit_api_key")

// Config holds every tunable setting.
type Config struct {
	APIKey       string        `mapstructure:"faceit_api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	HistoryGame  string        `mapstructure:"history_game"`
	HistoryLimit int           `mapstructure:"history_limit"`
	RecentWindow time.Duration `mapstructure:"recent_window"`
	LogLevel     string        `mapstructure:"log_level"`
}

// Dir returns the per-user settings directory (~/.smartban).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".smartban"
	}
	return filepath.Join(home, ".smartban")
}

// Load reads configuration. configFile may be empty, in which case
// ~/.smartban/config.yaml is used if it exists.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("faceit_api_key", "")
	v.SetDefault("base_url", faceit.DefaultBaseURL)
	v.SetDefault("history_game", collector.DefaultGame)
	v.SetDefault("history_limit", collector.DefaultHistoryLimit)
	v.SetDefault("recent_window", aggregator.DefaultRecentWindow)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("SMARTBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The key keeps its unprefixed name, as the other FACEIT tools use it.
	if err := v.BindEnv("faceit_api_key", "FACEIT_API_KEY", "SMARTBAN_FACEIT_API_KEY"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = readKeyFile(filepath.Join(Dir(), "faceit_api_key"))
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = collector.DefaultHistoryLimit
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = aggregator.DefaultRecentWindow
	}
	return &cfg, nil
}

// RequireAPIKey fails when no API key is available.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}

func readKeyFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

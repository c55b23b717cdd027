// file:artkv/pkg/x_log/config.go
package x_log

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//---------------------
// Config
//---------------------

// Config selects the log level and the outputs.
type Config struct {
	Level       string `json:"level"`
	LogFile     string `json:"logFile"`
	ToConsole   bool   `json:"toConsole"`
	ToFile      bool   `json:"toFile"`
	ColoredFile bool   `json:"coloredFile"`
	Style       string `json:"style"`      // dark, light
	MaxSize     int    `json:"maxSize"`    // MB
	MaxBackups  int    `json:"maxBackups"` // rotated files
	MaxAge      int    `json:"maxAge"`     // days
	Compress    bool   `json:"compress"`
}

//---------------------
// Defaults
//---------------------

const defaultConfigPath = "./xlog.json"

var defaultConfig = Config{
	Level:      "info",
	LogFile:    "logs/artkv.log",
	ToConsole:  true,
	Style:      "dark",
	MaxSize:    10,
	MaxBackups: 5,
	MaxAge:     7,
	Compress:   true,
}

// DefaultConfig returns a copy of the built-in config.
func DefaultConfig() Config { return defaultConfig }

//---------------------
// LoadConfig
//---------------------

// LoadConfig reads JSON config from file.
// If path is empty, uses XLOG_CONFIG or ./xlog.json. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("XLOG_CONFIG")
		if path == "" {
			path = defaultConfigPath
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills missing config values from defaultConfig
func applyDefaults(cfg *Config) {
	if cfg.Level == "" {
		cfg.Level = defaultConfig.Level
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultConfig.LogFile
	}
	if cfg.Style == "" {
		cfg.Style = defaultConfig.Style
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaultConfig.MaxSize
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = defaultConfig.MaxBackups
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = defaultConfig.MaxAge
	}
}

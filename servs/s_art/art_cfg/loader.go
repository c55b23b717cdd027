// file:artkv/servs/s_art/art_cfg/loader.go
package art_cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Environment overrides, applied after the file.
const (
	EnvConfigPath = "ART_CFG"
	EnvHTTPAddr   = "ART_HTTP_ADDR"
	EnvJwtSecret  = "ART_JWT_SECRET"
	EnvNatsURL    = "ART_NATS_URL"
	EnvLogLevel   = "ART_LOG_LEVEL"
	EnvMaxNodes   = "ART_MAX_NODES"

	defaultPath = "./art_config.json"
)

// Load loads the configuration from the specified file or ART_CFG.
func Load(path string) error {
	cfg, err := Read(path)
	if err != nil {
		return err
	}
	config = cfg
	return nil
}

// Read returns the configuration from path without installing it. A missing
// file silently yields the defaults.
func Read(path string) (ArtConfig, error) {
	cfg := defaultConfig

	if path == "" {
		if envPath := os.Getenv(EnvConfigPath); envPath != "" {
			path = envPath
		} else {
			path = defaultPath
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decode merges raw into cfg. Durations may be given as "5s" strings and
// numbers may arrive as strings.
func decode(raw map[string]any, cfg *ArtConfig) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	// logger uses the x_log json names
	if lg, ok := raw["logger"]; ok {
		delete(raw, "logger")
		data, err := json.Marshal(lg)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &cfg.Logger); err != nil {
			return err
		}
	}
	return dec.Decode(raw)
}

func applyEnv(cfg *ArtConfig) error {
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTPAddress = v
	}
	if v := os.Getenv(EnvJwtSecret); v != "" {
		cfg.JwtSecret = v
	}
	if v := os.Getenv(EnvNatsURL); v != "" {
		cfg.NatsURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv(EnvMaxNodes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxNodes, err)
		}
		cfg.MaxNodes = n
	}
	return nil
}

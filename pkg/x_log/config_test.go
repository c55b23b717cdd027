package x_log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig tests the behavior of LoadConfig with different configurations.
func TestLoadConfig(t *testing.T) {
	t.Run("FileNotFound", func(t *testing.T) {
		cfg, err := LoadConfig("./non_existent_config.json")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), *cfg)
	})

	t.Run("EnvPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xlog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"level":"warn"}`), 0o600))
		t.Setenv("XLOG_CONFIG", path)

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, "dark", cfg.Style)
	})

	t.Run("ValidConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test_config.json")
		customConfig := `{
			"Level": "debug",
			"LogFile": "logs/test.log",
			"ToConsole": true,
			"ToFile": true,
			"Style": "light",
			"MaxSize": 20,
			"MaxBackups": 10,
			"MaxAge": 30,
			"Compress": false
		}`
		require.NoError(t, os.WriteFile(path, []byte(customConfig), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "logs/test.log", cfg.LogFile)
		assert.True(t, cfg.ToConsole)
		assert.True(t, cfg.ToFile)
		assert.Equal(t, "light", cfg.Style)
		assert.Equal(t, 20, cfg.MaxSize)
		assert.Equal(t, 10, cfg.MaxBackups)
		assert.Equal(t, 30, cfg.MaxAge)
		assert.False(t, cfg.Compress)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test_invalid_config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Level": "debug",`), 0o600))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Level: "error", MaxSize: -1}
	applyDefaults(&cfg)
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "logs/artkv.log", cfg.LogFile)
	assert.Equal(t, 10, cfg.MaxSize)
	assert.Equal(t, 5, cfg.MaxBackups)
	assert.Equal(t, 7, cfg.MaxAge)
}

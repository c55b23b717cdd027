package x_log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInit tests if the Init function initializes the logger with default config.
func TestInit(t *testing.T) {
	t.Setenv("XLOG_CONFIG", filepath.Join(t.TempDir(), "missing.json"))
	Init()
	assert.NotNil(t, log.Logger)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

// TestInitWithConfig tests if InitWithConfig correctly sets up the logger.
func TestInitWithConfig(t *testing.T) {
	InitWithConfig(&Config{Level: "debug"}, "testModule")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	InitWithConfig(&Config{Level: "bogus"}, "testModule")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

// TestNew tests if the New function creates a scoped logger.
func TestNew(t *testing.T) {
	InitWithConfig(&Config{Level: "info"}, "")
	var buf bytes.Buffer
	logger := New("testModule").Output(&buf)

	logger.Info().Msg("Testing logger")
	assert.Contains(t, buf.String(), `"module":"testModule"`)
}

// TestConsoleLogging tests if console logging works as expected.
func TestConsoleLogging(t *testing.T) {
	var buf bytes.Buffer
	consoleWriter := ConsoleWriterWithStyles(&Styles{Out: &buf})
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	logger.Info().Msg("Test message")
	assert.Contains(t, buf.String(), "Test message")
	assert.Contains(t, buf.String(), "INF")
}

// TestFileLogging tests if the file logging works correctly.
func TestFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artkv.log")
	InitWithConfig(&Config{ToFile: true, LogFile: path, Level: "info"}, "testModule")

	Info().Str("key", "k1").Msg("Test file logging")
	Debug().Msg("hidden at info level")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Test file logging")
	assert.Contains(t, string(content), `"module":"testModule"`)
	assert.NotContains(t, string(content), "hidden at info level")

	lines, err := GetLogs(path, 10)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

// TestContextLogger tests logging with context integration.
func TestContextLogger(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("module", "testModule").Logger()
	ctx := WithLogger(context.Background(), &logger)

	From(ctx).Info().Msg("Message from context logger")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "testModule", entry["module"])

	// no logger in context falls back to the global one
	assert.Same(t, &log.Logger, From(context.Background()))
}

// TestLoggingLevels tests if the logger respects different logging levels.
func TestLoggingLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriterWithStyles(&Styles{Out: &buf})).With().Timestamp().Logger()

	logger.Debug().Msg("Debug message")
	logger.Info().Msg("Info message")
	logger.Warn().Msg("Warn message")
	logger.Error().Msg("Error message")

	for _, msg := range []string{"Debug message", "Info message", "Warn message", "Error message"} {
		assert.Contains(t, buf.String(), msg)
	}
}

// TestWithFields tests structured logging with custom fields.
func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriterWithStyles(&Styles{Out: &buf})).With().Timestamp().Logger()

	logger.Info().Str("key", "user/42").Str("op", "put").Msg("key stored")

	assert.Contains(t, buf.String(), "key=user/42")
	assert.Contains(t, buf.String(), "op=put")
	assert.Contains(t, buf.String(), "key stored")
}

// TestErrorLogging tests logging errors correctly.
func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(ConsoleWriterWithStyles(&Styles{Out: &buf})).With().Timestamp().Logger()

	logger.Error().Err(fmt.Errorf("node allocation failed")).Msg("insert refused")
	assert.Contains(t, buf.String(), "node allocation failed")
}

func TestPrintLogs(t *testing.T) {
	var buf bytes.Buffer
	PrintLogs(&buf, []string{"one", "two"}, ">", lipgloss.NewStyle())
	assert.Equal(t, "> one\n> two\n", buf.String())
}

func TestGetLogs_Tail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.log")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n4\n"), 0o600))

	lines, err := GetLogs(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, lines)

	_, err = GetLogs(filepath.Join(t.TempDir(), "missing.log"), 2)
	assert.Error(t, err)
}

package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmanalyzer/internal/config"
)

func decodeLastLine(t *testing.T, content string) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestNewLogger_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "run.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	var console bytes.Buffer
	logger, file, err := NewLogger(cfg, &console)
	require.NoError(t, err)
	require.NotNil(t, file)

	logger.Info("test message", "key", "value")
	require.NoError(t, file.Close())
	assert.Zero(t, console.Len(), "file output does not echo to the console")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entry := decodeLastLine(t, string(content))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Contains(t, entry, "source")
}

func TestNewLogger_TraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, file, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: "console"}, &buf)
	require.NoError(t, err)
	assert.Nil(t, file)

	ctx := WithTraceID(context.Background(), "run-123")
	logger.InfoContext(ctx, "with run id")

	entry := decodeLastLine(t, buf.String())
	assert.Equal(t, "run-123", entry["trace_id"])

	buf.Reset()
	logger.With("component", "loader").InfoContext(ctx, "derived logger")
	entry = decodeLastLine(t, buf.String())
	assert.Equal(t, "run-123", entry["trace_id"])
	assert.Equal(t, "loader", entry["component"])

	buf.Reset()
	logger.InfoContext(context.Background(), "no run id")
	entry = decodeLastLine(t, buf.String())
	assert.NotContains(t, entry, "trace_id")
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := NewLogger(config.LoggingConfig{Level: "warn", Output: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_TextFormatAndBothOutputs(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, file, err := NewLogger(config.LoggingConfig{
		Level: "info", Format: "text", Output: "both", FilePath: logFile,
	}, &buf)
	require.NoError(t, err)
	require.NotNil(t, file)

	logger.Info("hello", slog.Int("rows", 6))
	require.NoError(t, file.Close())

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "rows=6")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(content))
}

func TestNewLogger_FileOutputWithoutPath(t *testing.T) {
	_, _, err := NewLogger(config.LoggingConfig{Output: "file"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLogLevel(input), input)
	}
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing id is kept")
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithError(WithComponent(logger, "exporter"), assert.AnError).Info("x")
	entry := decodeLastLine(t, buf.String())
	assert.Equal(t, "exporter", entry["component"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])

	assert.Same(t, logger, WithError(logger, nil))
	assert.NotNil(t, WithComponent(nil, "x"))
}

package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmanalyzer/internal/config"
)

func setupTestEnv(t *testing.T) (*CSVWriter, string) {
	t.Helper()

	tempDir := t.TempDir()
	writer := NewCSVWriter(&config.Paths{OutputDir: tempDir})
	return writer, tempDir
}

// readCSV parses a written file after asserting and stripping the BOM.
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, utf8BOM), "file should start with a UTF-8 BOM")
	data = data[len(utf8BOM):]

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestNewCSVWriter(t *testing.T) {
	paths := &config.Paths{}
	writer := NewCSVWriter(paths)

	assert.NotNil(t, writer)
	assert.Equal(t, paths, writer.paths)
}

func TestStreamWriter_HeadersOnly(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	stream, err := writer.CreateStreamWriter(filepath.Join("nested", "empty.csv"), []string{"a", "b"})
	require.NoError(t, err)
	assert.Zero(t, stream.Rows())
	require.NoError(t, stream.Close())

	got := readCSV(t, filepath.Join(tempDir, "nested", "empty.csv"))
	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestStreamWriter_AbsolutePath(t *testing.T) {
	writer, _ := setupTestEnv(t)
	abs := filepath.Join(t.TempDir(), "abs.csv")

	stream, err := writer.CreateStreamWriter(abs, []string{"h"})
	require.NoError(t, err)
	require.NoError(t, stream.Close())
	assert.FileExists(t, abs)
}

func TestStreamWriter(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"country", "name"})
	require.NoError(t, err)

	for _, rec := range [][]string{{"한국", "하늘"}, {"미국", "Sky \"Blue\""}, {"중국", "line\nbreak"}} {
		require.NoError(t, stream.WriteRecord(rec))
	}
	assert.Equal(t, 3, stream.Rows())
	require.NoError(t, stream.Close())

	got := readCSV(t, filepath.Join(tempDir, "stream.csv"))
	require.Len(t, got, 4)
	assert.Equal(t, []string{"미국", "Sky \"Blue\""}, got[2])
	assert.Equal(t, []string{"중국", "line\nbreak"}, got[3])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "18.92", formatPercent(0.18921))
	assert.Equal(t, "42", formatInt(42))
	assert.Equal(t, "", formatDate(nil))
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, "a; b", joinLabels([]string{"a", "b"}))
}

package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("loaded file", slog.String("file", "KR_DATA.xlsx"))
		logger.Error("failed file", slog.Int("row", 3))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("loaded"))
		assert.True(t, handler.ContainsAttr("file", "KR_DATA.xlsx"))
		assert.False(t, handler.ContainsAttr("file", "US_DATA.xlsx"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)
		AssertLogContains(t, handler, slog.LevelDebug, "debug")
		AssertNoErrors(t, handler)
	})

	t.Run("derived loggers share the buffer and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "loader").Info("child")

		records := handler.GetRecords()
		assert.Len(t, records, 1)
		assert.Equal(t, "loader", records[0].Attrs["component"])
	})
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patricklucas/yelp-clog/pkg/sink"
)

func decodeRecord(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(line, &record))
	return record
}

func TestLoggerShipsRecords(t *testing.T) {
	mem := sink.NewMemorySink()
	logger := NewLogger(mem, "app_log", nil)

	logger.Info("user logged in", "user_id", 42)

	lines := mem.Lines("app_log")
	require.Len(t, lines, 1)

	record := decodeRecord(t, lines[0])
	assert.Equal(t, "user logged in", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, float64(42), record["user_id"])
	assert.Contains(t, record, "time")
}

func TestLoggerLevelFiltering(t *testing.T) {
	mem := sink.NewMemorySink()
	logger := NewLogger(mem, "app_log", &slog.HandlerOptions{Level: slog.LevelWarn})

	logger.Debug("not shipped")
	logger.Info("not shipped either")
	logger.Warn("shipped")
	logger.Error("also shipped")

	lines := mem.Lines("app_log")
	require.Len(t, lines, 2)
	assert.Equal(t, "shipped", decodeRecord(t, lines[0])["msg"])
	assert.Equal(t, "also shipped", decodeRecord(t, lines[1])["msg"])
}

func TestLoggerAttrsAndGroups(t *testing.T) {
	mem := sink.NewMemorySink()
	logger := NewLogger(mem, "app_log", nil)

	logger.With("request_id", "req-1").WithGroup("db").Info("query ran", "rows", 3)

	lines := mem.Lines("app_log")
	require.Len(t, lines, 1)

	record := decodeRecord(t, lines[0])
	assert.Equal(t, "req-1", record["request_id"])

	db, ok := record["db"].(map[string]any)
	require.True(t, ok, "group should nest attributes")
	assert.Equal(t, float64(3), db["rows"])
}

func TestLoggerRecordOrder(t *testing.T) {
	mem := sink.NewMemorySink()
	logger := NewLogger(mem, "app_log", nil)

	logger.Info("first")
	logger.Info("second")
	logger.Info("third")

	lines := mem.Lines("app_log")
	require.Len(t, lines, 3)
	assert.Equal(t, "first", decodeRecord(t, lines[0])["msg"])
	assert.Equal(t, "second", decodeRecord(t, lines[1])["msg"])
	assert.Equal(t, "third", decodeRecord(t, lines[2])["msg"])
}

func TestHandlerEnabled(t *testing.T) {
	h := New(sink.NewMemorySink(), "app_log", &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(h)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

package infrastructure

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/internal/ports"
)

func TestSlogLoggerAdapter_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Warn("cache lookup failed",
		ports.F("cache", "location_search"),
		ports.F("error", errors.New("connection refused")),
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "cache lookup failed", entry["msg"])
	assert.Equal(t, "location_search", entry["cache"])
	assert.Equal(t, "connection refused", entry["error"])
}

func TestSlogLoggerAdapter_RespectsHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSlogLoggerAdapter_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	NewSlogLoggerAdapter(nil).Info("unit toggled", ports.F("unit", "F"))
	assert.Contains(t, buf.String(), "unit=F")
}

func TestMultiLogger_FansOut(t *testing.T) {
	first := mocks.NewLogger()
	second := mocks.NewLogger()
	logger := NewMultiLogger(first, nil, second)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e", ports.F("k", 1))

	for _, l := range []*mocks.Logger{first, second} {
		require.Len(t, l.Entries(), 4)
		assert.Equal(t, []string{"e"}, l.Messages("ERROR"))
	}
}

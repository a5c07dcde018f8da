package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/database-playground/account-eraser/internal/deps/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "INFO", "")

	log.Debug("hidden")
	log.Info("account data deleted", "user_id", "abc123")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "account data deleted", entry["msg"])
	assert.Equal(t, "abc123", entry["user_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, "DEBUG", "text").Debug("shown")

	assert.Contains(t, buf.String(), "msg=shown")
}

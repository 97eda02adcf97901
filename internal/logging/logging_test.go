package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("Error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("INFO", "json", &buf)

	logger.Debug("hidden")
	logger.Info("row appended", "sheet", "Cost", "row", 11)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "row appended", entry["msg"])
	assert.Equal(t, "Cost", entry["sheet"])
	assert.Equal(t, float64(11), entry["row"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New("WARN", "text", &buf).Warn("sheet header drift", "sheet", "Users")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "sheet=Users")
}

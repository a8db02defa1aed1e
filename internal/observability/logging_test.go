package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/textmoba/internal/config"
)

// jsonLines returns the decoded lines of a JSON log file.
func jsonLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textmoba.log")
	logger, closeLog, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	defer closeLog()

	logger.Debug("dice draw")
	logger.Warn("skipping hero")
	logger.Error("command failed")
	require.NoError(t, logger.Sync())

	lines := jsonLines(t, path)
	require.Len(t, lines, 2, "debug is below the level")
	for _, l := range lines {
		assert.Equal(t, AppName, l["app"])
		assert.Contains(t, l, "time")
		assert.Contains(t, l, "caller")
	}
	assert.Equal(t, "skipping hero", lines[0]["msg"])
	assert.NotContains(t, lines[0], "stacktrace")
	assert.Equal(t, "command failed", lines[1]["msg"])
	assert.Contains(t, lines[1], "stacktrace")
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, closeLog, err := NewLogger(config.LoggingConfig{Level: "debug", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, logger)
		closeLog()
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, _, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, _, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestNewLogger_InvalidOutput(t *testing.T) {
	_, _, err := NewLogger(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log"),
	})
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, closeLog, err := NewLogger(config.LoggingConfig{Level: level, Format: "json"})
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
		closeLog()
	}
}

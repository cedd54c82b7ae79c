package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"trace", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("logfmt"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Info("fetched", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "fetched", entry["msg"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf, Prefix: "todolist"})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("slow backend", "endpoint", "/todolist/todos")
	out := buf.String()
	assert.Contains(t, out, "slow backend")
	assert.Contains(t, out, "endpoint")
	assert.Contains(t, out, "todolist")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error("dropped", "k", "v")
	})
}

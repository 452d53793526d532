package logutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, false, false)
	t.Cleanup(func() { Setup(false, false) })

	Info("notification dispatched", "kind", "update_ready")

	out := buf.String()
	assert.Contains(t, out, "notification dispatched")
	assert.Contains(t, out, "kind=update_ready")
}

func TestSetupWithWriter_StructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, false, true)
	t.Cleanup(func() { Setup(false, false) })

	Info("notification dispatched", "kind", "achievement", "silent", true)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "notification dispatched", entry["msg"])
	assert.Equal(t, "achievement", entry["kind"])
	assert.Equal(t, true, entry["silent"])
}

func TestDebugLevelGating(t *testing.T) {
	t.Run("suppressed by default", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithWriter(&buf, false, false)
		t.Cleanup(func() { Setup(false, false) })

		Debug("icon resolution failed", "gameID", 1)

		assert.Empty(t, buf.String())
	})

	t.Run("emitted when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithWriter(&buf, true, false)
		t.Cleanup(func() { Setup(false, false) })

		Debug("icon resolution failed", "gameID", 1)

		assert.Contains(t, buf.String(), "icon resolution failed")
	})
}

func TestIsDebugEnabled_EnvVariable(t *testing.T) {
	Setup(false, false)
	assert.False(t, IsDebugEnabled())

	t.Setenv(EnvDebug, "true")
	assert.True(t, IsDebugEnabled())

	t.Setenv(EnvDebug, "1")
	assert.False(t, IsDebugEnabled())
}

func TestWarnAndError(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, false, false)
	t.Cleanup(func() { Setup(false, false) })

	Warn("progress omitted", "totalCount", 0)
	Error("toast delivery failed", "stage", "send")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=WARN")
	assert.Contains(t, lines[1], "level=ERROR")
}

func TestLoggerReturnsConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, false, false)
	t.Cleanup(func() { Setup(false, false) })

	Logger().Info("direct use")

	assert.Contains(t, buf.String(), "direct use")
}

package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/germanamz/llmgate/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, logging.FormatJSON, false)

	log.Info("request served", "status", 200, logging.Error(errors.New("none")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "request served", rec["message"])
	assert.Equal(t, "info", rec["level"])
	assert.EqualValues(t, 200, rec["status"])
	assert.Equal(t, "none", rec["error"])
}

func TestNew_LevelFromDebug(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, logging.FormatJSON, false).Debug("hidden")
	assert.Empty(t, buf.String())

	logging.New(&buf, logging.FormatJSON, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, logging.FormatConsole, false).Warn("careful", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "key=")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}

func TestDiscard(t *testing.T) {
	log := logging.Discard()
	assert.False(t, log.Enabled(t.Context(), slog.LevelError))
	log.Error("dropped")
}

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestJSONOutputCarriesErrorCode(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: NewOutput(&buf)})

	err := errors.New(errors.ErrCodeAuthNoSession, "not logged in").
		WithSuggestion("Run 'petconsole auth login' to authenticate")
	logger.WithError(err).Warn("request skipped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request skipped", entry["msg"])
	assert.Equal(t, "AUTH-003", entry["error_code"])
	assert.Equal(t, "not logged in", entry["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: NewOutput(&buf)})

	logger.Debug("hidden")
	logger.Info("also hidden")
	require.Zero(t, buf.Len())

	logger.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

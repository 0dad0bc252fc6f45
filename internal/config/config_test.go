package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultDebounce, cfg.List.Debounce)
	assert.Equal(t, DefaultPageSize, cfg.List.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadParsesDurationsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://staging.example.test/v2
  timeout: 10s
list:
  debounce: 150ms
  page_size: 25
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.test/v2", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 150*time.Millisecond, cfg.List.Debounce)
	assert.Equal(t, 25, cfg.List.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL, "fields absent from the file keep their defaults")
	assert.Equal(t, DefaultDebounce, cfg.List.Debounce)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://from-file.example.test
`)

	t.Setenv("PETCONSOLE_API_BASE_URL", "https://from-env.example.test")
	t.Setenv("PETCONSOLE_API_TIMEOUT", "7s")
	t.Setenv("PETCONSOLE_LIST_PAGE_SIZE", "50")
	t.Setenv("PETCONSOLE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.test", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout)
	assert.Equal(t, 50, cfg.List.PageSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "api:\n  timeout: soon\n"},
		{"negative page size", "list:\n  page_size: -1\n"},
		{"not yaml", "{{{\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

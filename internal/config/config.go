package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/geia-vip/pet-manager-console/internal/errors"
)

// Defaults applied when the config file or a field is absent.
const (
	DefaultBaseURL  = "https://pet-manager-api.geia.vip/v1"
	DefaultTimeout  = 30 * time.Second
	DefaultDebounce = 300 * time.Millisecond
	DefaultPageSize = 10
)

// Config holds all configuration for the console.
type Config struct {
	API  APIConfig  `yaml:"api"`
	Auth AuthConfig `yaml:"auth"`
	List ListConfig `yaml:"list"`
	Log  LogConfig  `yaml:"log"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	// BaseURL is the pet-manager API root, including the version prefix.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds every request. The backend gives no guarantee a hung
	// call ever completes, so zero is rejected rather than treated as
	// "wait forever".
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig configures durable credential storage.
type AuthConfig struct {
	// Dir is where auth.json lives. Defaults to ~/.petconsole.
	Dir string `yaml:"dir"`
}

// ListConfig configures the list synchronization pipeline.
type ListConfig struct {
	// Debounce is the quiet period before a filter change triggers a fetch.
	Debounce time.Duration `yaml:"debounce"`

	// PageSize is the page size requested from the backend.
	PageSize int `yaml:"page_size"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UnmarshalYAML accepts durations in Go notation ("30s", "300ms").
// Fields left out of the file keep their previous (default) values.
func (a *APIConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.BaseURL != "" {
		a.BaseURL = raw.BaseURL
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
		a.Timeout = d
	}
	return nil
}

// UnmarshalYAML accepts durations in Go notation ("300ms").
func (l *ListConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Debounce string `yaml:"debounce"`
		PageSize int    `yaml:"page_size"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Debounce != "" {
		d, err := time.ParseDuration(raw.Debounce)
		if err != nil {
			return fmt.Errorf("list.debounce: %w", err)
		}
		l.Debounce = d
	}
	if raw.PageSize != 0 {
		l.PageSize = raw.PageSize
	}
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Auth: AuthConfig{
			Dir: defaultAuthDir(),
		},
		List: ListConfig{
			Debounce: DefaultDebounce,
			PageSize: DefaultPageSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(defaultAuthDir(), "config.yaml")
}

func defaultAuthDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".petconsole"
	}
	return filepath.Join(home, ".petconsole")
}

// Load reads configuration from the given path, falling back to defaults
// for anything unset, then applies PETCONSOLE_* environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfigRead, "parse "+path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return Config{}, errors.Wrap(errors.ErrCodeConfigRead, "read "+path, err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PETCONSOLE_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("PETCONSOLE_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("PETCONSOLE_AUTH_DIR"); v != "" {
		c.Auth.Dir = v
	}
	if v := os.Getenv("PETCONSOLE_LIST_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.List.PageSize = n
		}
	}
	if v := os.Getenv("PETCONSOLE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PETCONSOLE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.NewConfigInvalidError("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return errors.NewConfigInvalidError("api.timeout must be positive")
	}
	if c.List.PageSize <= 0 {
		return errors.NewConfigInvalidError("list.page_size must be positive")
	}
	if c.List.Debounce < 0 {
		return errors.NewConfigInvalidError("list.debounce must not be negative")
	}
	return nil
}

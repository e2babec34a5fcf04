package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/deckforge/internal/config/loader"
)

// Config provides unified access to deckforge settings. Values come from
// three layers merged in order: built-in defaults, the user's settings.toml,
// and DECKFORGE_-prefixed environment variables. Later layers win.
type Config struct {
	mu sync.RWMutex

	merged map[string]any

	userConfigDir string
	envPrefix     string
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir overrides the directory settings.toml is read from.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config with the given options. Call Load before reading.
func New(opts ...Option) *Config {
	c := &Config{
		envPrefix: "DECKFORGE",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}
	return c
}

// Load reads and merges all configuration sources. A missing settings file
// is not an error; a malformed one is.
func (c *Config) Load(_ context.Context) error {
	merged := defaultConfig()

	settingsPath := filepath.Join(c.userConfigDir, "settings.toml")
	fileData, err := loader.NewTOMLLoader(settingsPath).Load()
	if err != nil {
		return err
	}
	merged = loader.DeepMerge(merged, fileData)

	envData, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return err
	}
	merged = loader.DeepMerge(merged, envData)

	c.mu.Lock()
	c.merged = merged
	c.mu.Unlock()
	return nil
}

// Get returns the value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Set writes a value at the given path into the merged configuration. The
// change is in-memory only.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.merged == nil {
		c.merged = defaultConfig()
	}
	return setPath(c.merged, path, value)
}

// Merged returns a deep copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deckforge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "deckforge")
}

// defaultConfig returns the built-in defaults layer.
func defaultConfig() map[string]any {
	return map[string]any{
		"history": map[string]any{
			"maxSize":        100,
			"merging":        true,
			"cleanupDelayMs": 100,
		},
		"deck": map[string]any{
			"defaultZone": "main",
			"autoLoad":    true,
		},
		"ui": map[string]any{
			"theme":         "dark",
			"showStatusBar": true,
			"confirmOnQuit": true,
		},
		"macros": map[string]any{
			"enabled": true,
			"dir":     "",
		},
		"logging": map[string]any{
			"level":  "info",
			"format": "text",
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]]
		if !ok {
			nm := make(map[string]any)
			current[parts[i]] = nm
			current = nm
			continue
		}
		nm, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nm
	}
	current[parts[len(parts)-1]] = value
	return nil
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	var parts []string
	current := ""
	for _, r := range path {
		if r == '.' {
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
			continue
		}
		current += string(r)
	}
	if current != "" {
		parts = append(parts, current)
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}

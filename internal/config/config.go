// Package config provides layered configuration for the boxwin tool.
//
// Layers, lowest priority first:
//
//	1. Built-in defaults
//	2. Config file (TOML or YAML)   ← $XDG_CONFIG_HOME/boxwin/config.toml or --config
//	3. Environment variables        ← BOXWIN_*
//	4. Overrides                    ← command line flags, via Set
//
// Settings are addressed by dot paths such as "session.boxCapacity".
// Typed section accessors (Surface, Session, Colors, Logging, Script) fall
// back to defaults and record type problems in ConfigErrors.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/boxwin/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "BOXWIN_"

// layer is one named configuration source.
type layer struct {
	name string
	data map[string]any
}

// Config merges the configuration layers and gives typed access to them.
// It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	fs        loader.FileSystem
	file      string
	required  bool
	envPrefix string
	environ   func() []string

	layers    []layer
	overrides map[string]any
	merged    map[string]any

	configErrors map[string]error
}

// Option configures a Config.
type Option func(*Config)

// WithFile loads settings from path. Unlike the default location, an
// explicit file must exist.
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
		c.required = path != ""
	}
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix. An empty prefix
// disables the environment layer.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// withEnviron replaces os.Environ, for tests.
func withEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a Config holding only the defaults until Load is called.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
		environ:   os.Environ,
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.file == "" {
		c.file = defaultConfigPath()
	}
	c.layers = []layer{{name: "defaults", data: defaultConfig()}}
	c.rebuild()
	return c
}

// Load reads the config file and the environment.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	layers := []layer{{name: "defaults", data: defaultConfig()}}

	if c.file != "" {
		l, err := loader.ForPath(c.fs, c.file)
		if err != nil {
			return fmt.Errorf("config file %s: %w", c.file, err)
		}
		data, err := l.Load()
		if err != nil {
			return err
		}
		if data == nil && c.required {
			return fmt.Errorf("%w: %s", ErrFileNotFound, c.file)
		}
		if data != nil {
			layers = append(layers, layer{name: "file", data: data})
		}
	}

	if c.envPrefix != "" {
		data, err := loader.NewEnvLoaderWithEnviron(c.envPrefix, c.environ).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		if len(data) > 0 {
			layers = append(layers, layer{name: "environment", data: data})
		}
	}

	c.layers = layers
	c.configErrors = nil
	c.rebuild()
	return nil
}

// File returns the config file path in use.
func (c *Config) File() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.file
}

// Sources lists the loaded layer names, lowest priority first.
func (c *Config) Sources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.layers)+1)
	for _, l := range c.layers {
		names = append(names, l.name)
	}
	if len(c.overrides) > 0 {
		names = append(names, "overrides")
	}
	return names
}

// rebuild recomputes the merged view. Callers hold mu.
func (c *Config) rebuild() {
	merged := make(map[string]any)
	for _, l := range c.layers {
		merged = loader.DeepMerge(merged, l.data)
	}
	c.merged = loader.DeepMerge(merged, c.overrides)
}

// Get returns the merged value at path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// Set stores value at path in the override layer, above every other source.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := setPath(c.overrides, path, value); err != nil {
		return err
	}
	c.rebuild()
	return nil
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
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

// GetInt returns an integer value at the given path. Whole floats are
// accepted since some formats decode every number as float64.
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
	case uint64:
		return int(val), nil
	case float64:
		if val == float64(int(val)) {
			return int(val), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
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

// defaultConfigPath returns $XDG_CONFIG_HOME/boxwin/config.toml, or the
// ~/.config equivalent.
func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "boxwin", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "boxwin", "config.toml")
}

func defaultConfig() map[string]any {
	return map[string]any{
		"surface": map[string]any{
			"width":     80,
			"height":    24,
			"trueColor": false,
		},
		"session": map[string]any{
			"boxCapacity":  0,
			"slotCapacity": 32,
			"defaultStyle": "single",
		},
		"colors": map[string]any{
			"foreground": "gray",
			"background": "black",
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"script": map[string]any{
			"path":  "",
			"watch": false,
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}
	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map, creating intermediate maps.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nm, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s is not a section", ErrInvalidPath, part)
		}
		current = nm
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path, skipping empty segments.
func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
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
		return fmt.Sprintf("%T", v)
	}
}

// recordConfigError keeps the first error seen for path.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns the type problems met by the section accessors.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.configErrors) == 0 {
		return nil
	}
	out := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		out[k] = v
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrSettingNotFound)
}

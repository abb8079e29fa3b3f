package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from a YAML file.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a YAML loader for path on the OS file system.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader reading through fsys.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fsys, path: path}
}

// Load reads and parses the file.
func (l *YAMLLoader) Load() (map[string]any, error) {
	data, err := readFile(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseYAML(l.path, data)
}

// ParseYAML parses YAML data; source names it in errors. The document must
// be a mapping.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var te *yaml.TypeError
		if errors.As(err, &te) && len(te.Errors) > 0 {
			pe.Message = te.Errors[0]
		}
		return nil, pe
	}
	if config == nil {
		config = make(map[string]any)
	}
	if err := normalize(config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return config, nil
}

// normalize rewrites nested maps decoded with non-string keys into
// map[string]any so the YAML tree has the same shape as the TOML one.
func normalize(m map[string]any) error {
	for k, v := range m {
		nv, err := normalizeValue(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		m[k] = nv
	}
	return nil
}

func normalizeValue(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, normalize(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			out[ks] = item
		}
		return out, normalize(out)
	case []any:
		for i, item := range t {
			nv, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			t[i] = nv
		}
		return t, nil
	default:
		return v, nil
	}
}

package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from prefixed environment variables.
// BOXWIN_SESSION_BOX_CAPACITY becomes session.boxCapacity unless an explicit
// mapping names another path.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates an environment loader. The prefix includes the
// trailing underscore, e.g. "BOXWIN_".
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithEnviron(prefix, os.Environ)
}

// NewEnvLoaderWithEnviron creates an environment loader reading variables
// from environ instead of the process environment.
func NewEnvLoaderWithEnviron(prefix string, environ func() []string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: environ,
	}
}

// defaultEnvMapping holds the short forms that do not follow the
// SECTION_SETTING layout.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL": "logging.level",
		prefix + "SCRIPT":    "script.path",
		prefix + "WIDTH":     "surface.width",
		prefix + "HEIGHT":    "surface.height",
	}
}

// AddMapping maps envVar to configPath explicitly.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load collects every prefixed variable. Empty values are kept.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts PREFIX_SECTION_SOME_SETTING to section.someSetting.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(parts[1]))
	for _, p := range parts[2:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return section + "." + b.String()
}

// parseValue turns booleans and integers into typed values; anything else
// stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

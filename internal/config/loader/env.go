package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
}

// NewEnvLoader creates an environment loader for variables carrying the
// given prefix (without the trailing underscore).
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  strings.TrimSuffix(prefix, "_") + "_",
		mapping: defaultEnvMapping(prefix),
	}
}

// defaultEnvMapping maps well-known variables to config paths that the
// mechanical name conversion would get wrong.
func defaultEnvMapping(prefix string) map[string]string {
	prefix = strings.TrimSuffix(prefix, "_")
	return map[string]string{
		prefix + "_LOG_LEVEL":        "logging.level",
		prefix + "_THEME":            "ui.theme",
		prefix + "_HISTORY_MAX_SIZE": "history.maxSize",
		prefix + "_MACROS_DIR":       "macros.dir",
	}
}

// Load reads prefixed environment variables into a configuration map.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		setByPath(config, l.envToPath(name), parseValue(value))
	}

	return config, nil
}

// envToPath converts DECKFORGE_HISTORY_CLEANUP_DELAY_MS to
// history.cleanupDelayMs.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) == 0 {
		return strings.ToLower(name)
	}

	result := []string{strings.ToLower(parts[0])}
	if len(parts) > 1 {
		setting := strings.ToLower(parts[1])
		for _, part := range parts[2:] {
			if part == "" {
				continue
			}
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
		result = append(result, setting)
	}
	return strings.Join(result, ".")
}

// parseValue converts an environment string into bool, int, float, or
// leaves it a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for i := 0; i < len(parts)-1; i++ {
		next, ok := current[parts[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[parts[i]] = next
		}
		current = next
	}
	if len(parts) > 0 {
		current[parts[len(parts)-1]] = value
	}
}

// Package config loads CLI settings for the REDCap client from flags, the
// environment and an optional config file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Settings read through viper keep the types of the file syntax: JSON numbers
// are float64, YAML integers int, TOML integers int64, and any of them may be
// quoted. The converters below accept all of those.

// lookupSetting returns the first of keys present in settings. Viper lowers
// keys, so candidates are compared in lower case.
func lookupSetting(settings map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if val, ok := settings[strings.ToLower(key)]; ok {
			return val, true
		}
	}
	return nil, false
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func asFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if v = strings.TrimSpace(v); v == "" {
			return 0, nil
		}
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("want a number, got %T", value)
	}
}

func asBool(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if v = strings.TrimSpace(v); v == "" {
			return false, nil
		}
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("want true or false, got %T", value)
	}
}

// asDuration reads "1m30s" style strings; a bare number counts seconds.
func asDuration(value any) (time.Duration, error) {
	if s, ok := value.(string); ok {
		if s = strings.TrimSpace(s); s == "" {
			return 0, nil
		}
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
	}
	if d, ok := value.(time.Duration); ok {
		return d, nil
	}
	secs, err := asFloat64(value)
	if err != nil {
		return 0, fmt.Errorf("want a duration such as 30s, got %v", value)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// sectionSettings returns a nested table such as log or tracing with its keys
// lowered.
func sectionSettings(value any) (map[string]any, error) {
	section, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %T", value)
	}
	lowered := make(map[string]any, len(section))
	for key, val := range section {
		lowered[strings.ToLower(strings.TrimSpace(key))] = val
	}
	return lowered, nil
}

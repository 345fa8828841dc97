package config

import (
	"reflect"
	"sort"
	"strings"
)

// KnownKeys returns every dotted settings key, derived from the mapstructure
// tags of Settings. Keys are lower case, matching viper's normalisation.
func KnownKeys() []string {
	known := make(map[string]struct{})
	collectKeys("", reflect.TypeOf(Settings{}), known)
	out := make([]string, 0, len(known))
	for key := range known {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// IsKnownKey reports whether key names a leaf setting.
func IsKnownKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, known := range KnownKeys() {
		if known == key {
			return true
		}
	}
	return false
}

func collectKeys(prefix string, t reflect.Type, known map[string]struct{}) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if prefix != "" {
			key = prefix + "." + key
		}
		if field.Type.Kind() == reflect.Struct {
			collectKeys(key, field.Type, known)
			continue
		}
		known[key] = struct{}{}
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReplaceWithEnv expands $VAR and ${VAR} references using the process
// environment and a leading "~" using the user's home directory. Unknown
// variables expand to the empty string.
func ReplaceWithEnv(s string) string {
	if s == "" {
		return s
	}
	if s == "~" || strings.HasPrefix(s, "~/") || strings.HasPrefix(s, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			s = home + s[1:]
		}
	}
	return os.ExpandEnv(s)
}

// AdjustEnv prepends the configured additional paths to PATH, skipping
// entries that are empty or already present.
func (s Settings) AdjustEnv() error {
	if len(s.AdditionalPaths) == 0 {
		return nil
	}
	current := filepath.SplitList(os.Getenv("PATH"))
	seen := make(map[string]struct{}, len(current))
	for _, entry := range current {
		seen[entry] = struct{}{}
	}

	var prefix []string
	for _, raw := range s.AdditionalPaths {
		entry := ReplaceWithEnv(strings.TrimSpace(raw))
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		prefix = append(prefix, entry)
	}
	if len(prefix) == 0 {
		return nil
	}

	joined := strings.Join(append(prefix, current...), string(os.PathListSeparator))
	if err := os.Setenv("PATH", joined); err != nil {
		return fmt.Errorf("config: set PATH: %w", err)
	}
	return nil
}

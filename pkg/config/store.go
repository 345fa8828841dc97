package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

/*
Settings are layered with the following precedence (highest first):

1. Environment variables prefixed with PROJGEN_ (dots become underscores,
   e.g. PROJGEN_EDITOR_TABWIDTH=8)
2. The settings file (YAML)
3. DefaultSettings()

Environment overrides are applied when the store is loaded. Later updates
made through Set or Update are kept in memory until Save writes them back.
*/

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "PROJGEN"

// Listener is notified with the new settings after every successful change.
type Listener func(Settings)

// Store owns the application settings and their backing file.
type Store struct {
	mu        sync.RWMutex
	path      string
	settings  Settings
	listeners map[int]Listener
	nextID    int
}

// Load reads settings from path layered over defaults and environment
// overrides. An empty path resolves to the settings file inside the default
// workspace; a missing file yields the defaults.
func Load(path string) (*Store, error) {
	defaults := DefaultSettings()
	if strings.TrimSpace(path) == "" {
		path = defaults.LocalConfigFilePath()
	}

	v, err := newViper(defaults)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, statErr)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range KnownKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind env %s: %w", key, err)
		}
	}

	settings, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := Validate(settings); err != nil {
		return nil, err
	}

	return &Store{
		path:      path,
		settings:  settings,
		listeners: make(map[int]Listener),
	}, nil
}

// NewStore wraps settings that did not come from a file. Save writes to path.
func NewStore(path string, settings Settings) (*Store, error) {
	if err := Validate(settings); err != nil {
		return nil, err
	}
	return &Store{
		path:      path,
		settings:  settings,
		listeners: make(map[int]Listener),
	}, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.AdditionalPaths = append([]string(nil), s.settings.AdditionalPaths...)
	return out
}

// Update applies fn to a copy of the settings, validates the result and
// commits it. Listeners are notified after the commit.
func (s *Store) Update(fn func(*Settings) error) error {
	if fn == nil {
		return nil
	}
	next := s.Settings()
	if err := fn(&next); err != nil {
		return err
	}
	if err := Validate(next); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// Set assigns a single dotted key from its string form, e.g.
// Set("editor.tabWidth", "8"). Unknown keys are rejected.
func (s *Store) Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	v, err := newViper(s.Settings())
	if err != nil {
		return err
	}
	v.Set(strings.ToLower(strings.TrimSpace(key)), value)

	next, err := decode(v)
	if err != nil {
		return err
	}
	if err := Validate(next); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// Get returns the string form of a dotted key.
func (s *Store) Get(key string) (string, error) {
	if !IsKnownKey(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	v, err := newViper(s.Settings())
	if err != nil {
		return "", err
	}
	value := v.Get(strings.ToLower(strings.TrimSpace(key)))
	switch typed := value.(type) {
	case nil:
		return "", nil
	case []any:
		parts := make([]string, len(typed))
		for i, item := range typed {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ","), nil
	default:
		return fmt.Sprint(typed), nil
	}
}

// Save writes the settings file as YAML, creating parent directories.
func (s *Store) Save() error {
	s.mu.RLock()
	path := s.path
	settings := s.settings
	s.mu.RUnlock()

	if path == "" {
		return fmt.Errorf("config: settings path is empty")
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) commit(next Settings) {
	s.mu.Lock()
	s.settings = next
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// Validate checks struct constraints plus the proxy rules that span fields.
func Validate(settings Settings) error {
	if err := validator.New().Struct(settings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	proxy := settings.Network.Proxy
	if proxy.Type == ProxyCustom {
		if proxy.Host == "" || proxy.Port == "" {
			return fmt.Errorf("%w: custom proxy requires host and port", ErrInvalidSettings)
		}
		if proxy.UseCredentials && proxy.Username == "" {
			return fmt.Errorf("%w: proxy credentials require a username", ErrInvalidSettings)
		}
	}
	return nil
}

// newViper seeds a viper instance with settings encoded as YAML so every key
// is known to viper (required for environment lookups).
func newViper(settings Settings) (*viper.Viper, error) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("config: encode defaults: %w", err)
	}
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	return v, nil
}

func decode(v *viper.Viper) (Settings, error) {
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("config: decode settings: %w", err)
	}
	return settings, nil
}

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := store.Settings()
	want := DefaultSettings()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if got.ProjectsPath() != filepath.Join(home, defaultWorkspaceDir, "projects") {
		t.Fatalf("projects path: %s", got.ProjectsPath())
	}
	if got.TemplatesPath() != filepath.Join(home, defaultWorkspaceDir, "templates") {
		t.Fatalf("templates path: %s", got.TemplatesPath())
	}
	if got.HistoryPath() != filepath.Join(home, defaultWorkspaceDir, DefaultHistoryFile) {
		t.Fatalf("history path: %s", got.HistoryPath())
	}
}

func TestLoad_FileAndEnvLayers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := "workspacePath: /srv/work\n" +
		"editor:\n  tabWidth: 8\n  style: monokai\n" +
		"network:\n  proxy:\n    type: system\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PROJGEN_EDITOR_TABWIDTH", "2")
	t.Setenv("PROJGEN_NETWORK_PROXY_USERNAME", "ada")

	store, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := store.Settings()
	if got.WorkspacePath != "/srv/work" {
		t.Fatalf("workspace: %q", got.WorkspacePath)
	}
	if got.Editor.Style != "monokai" {
		t.Fatalf("file value lost: %q", got.Editor.Style)
	}
	if got.Editor.TabWidth != 2 {
		t.Fatalf("env should override file, got %d", got.Editor.TabWidth)
	}
	if got.Network.Proxy.Type != ProxySystem || got.Network.Proxy.Username != "ada" {
		t.Fatalf("proxy: %+v", got.Network.Proxy)
	}
	if !got.Editor.TabsToSpaces {
		t.Fatalf("defaults should fill unspecified keys")
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  tabWidth: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected invalid settings, got %v", err)
	}
}

func TestStore_SetGet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("editor.tabWidth", "8"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set("developMode", "true"); err != nil {
		t.Fatalf("set bool: %v", err)
	}
	if err := store.Set("additionalPaths", "/opt/gcc/bin,/opt/tools"); err != nil {
		t.Fatalf("set list: %v", err)
	}

	got := store.Settings()
	if got.Editor.TabWidth != 8 || !got.DevelopMode {
		t.Fatalf("unexpected settings %+v", got)
	}
	if diff := cmp.Diff([]string{"/opt/gcc/bin", "/opt/tools"}, got.AdditionalPaths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}

	value, err := store.Get("editor.tabwidth")
	if err != nil || value != "8" {
		t.Fatalf("get: %q %v", value, err)
	}
	value, err = store.Get("network.proxy.host")
	if err != nil || value != "" {
		t.Fatalf("get unset: %q %v", value, err)
	}

	if err := store.Set("editor.colour", "red"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected unknown key, got %v", err)
	}
	if err := store.Set("editor.tabWidth", "0"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.Settings().Editor.TabWidth != 8 {
		t.Fatalf("rejected update must not be committed")
	}
}

func TestStore_UpdateNotifiesSubscribers(t *testing.T) {
	store := newTestStore(t)

	var seen []int
	unsubscribe := store.Subscribe(func(s Settings) {
		seen = append(seen, s.Editor.TabWidth)
	})

	if err := store.Update(func(s *Settings) error {
		s.Editor.TabWidth = 3
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.Update(func(s *Settings) error {
		s.Network.Proxy.Type = ProxyCustom
		return nil
	}); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("custom proxy without host should fail, got %v", err)
	}

	unsubscribe()
	if err := store.Update(func(s *Settings) error {
		s.Editor.TabWidth = 5
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if diff := cmp.Diff([]int{3}, seen); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
}

func TestStore_SaveReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "projgen.yaml")
	store, err := NewStore(path, DefaultSettings())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Update(func(s *Settings) error {
		s.WorkspacePath = "/data/ws"
		s.Network.Proxy = ProxySettings{
			Type:           ProxyCustom,
			Host:           "proxy.example.com",
			Port:           "3128",
			UseCredentials: true,
			Username:       "ada",
			Password:       "secret",
		}
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(store.Settings(), reloaded.Settings()); diff != "" {
		t.Fatalf("reload mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Proxy(t *testing.T) {
	s := DefaultSettings()
	s.Network.Proxy = ProxySettings{Type: ProxyCustom, Host: "10.0.0.1", Port: "8080", UseCredentials: true}
	if err := Validate(s); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("credentials without username should fail, got %v", err)
	}
	s.Network.Proxy.Username = "ada"
	if err := Validate(s); err != nil {
		t.Fatalf("valid proxy rejected: %v", err)
	}
	s.Network.Proxy.Port = "http"
	if err := Validate(s); err == nil {
		t.Fatalf("non numeric port should fail")
	}
	s.Network.Proxy = ProxySettings{Type: "socks"}
	if err := Validate(s); err == nil {
		t.Fatalf("unknown proxy type should fail")
	}
}

func TestRedacted(t *testing.T) {
	s := DefaultSettings()
	s.Network.Proxy.Password = "secret"
	if got := s.Redacted().Network.Proxy.Password; got != redacted {
		t.Fatalf("password not redacted: %q", got)
	}
	if s.Network.Proxy.Password != "secret" {
		t.Fatalf("redaction must not mutate the original")
	}
}

func TestReplaceWithEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BOARD", "nucleo")

	cases := map[string]string{
		"":                      "",
		"/plain":                "/plain",
		"$HOME/ws":              home + "/ws",
		"${BOARD}-fw":           "nucleo-fw",
		"~/work":                home + "/work",
		"/x/${PROJGEN_UNSET_X}": "/x/",
	}
	for in, want := range cases {
		if got := ReplaceWithEnv(in); got != want {
			t.Fatalf("ReplaceWithEnv(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestAdjustEnv(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	t.Setenv("TOOLCHAIN", "/opt/arm")
	s := DefaultSettings()
	s.AdditionalPaths = []string{"${TOOLCHAIN}/bin", "/usr/bin", "", "/opt/arm/bin"}

	if err := s.AdjustEnv(); err != nil {
		t.Fatalf("adjust env: %v", err)
	}
	want := strings.Join([]string{"/opt/arm/bin", "/usr/bin"}, string(os.PathListSeparator))
	if got := os.Getenv("PATH"); got != want {
		t.Fatalf("PATH: want %q, got %q", want, got)
	}
}

func TestKnownKeysAndSchema(t *testing.T) {
	keys := KnownKeys()
	for _, key := range []string{"workspacepath", "editor.tabwidth", "network.proxy.password", "history.limit"} {
		if !IsKnownKey(key) {
			t.Fatalf("expected %q in %v", key, keys)
		}
	}
	if IsKnownKey("editor") {
		t.Fatalf("struct keys are not leaf settings")
	}

	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	for _, fragment := range []string{`"tabWidth"`, `"workspacePath"`, `"custom"`} {
		if !strings.Contains(string(data), fragment) {
			t.Fatalf("schema missing %s: %s", fragment, data)
		}
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "projgen.yaml"), DefaultSettings())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

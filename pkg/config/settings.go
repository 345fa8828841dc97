package config

import (
	"os"
	"path/filepath"
)

// ProxyType selects how network requests reach the outside world.
type ProxyType string

const (
	ProxyNone   ProxyType = "none"
	ProxySystem ProxyType = "system"
	ProxyCustom ProxyType = "custom"
)

// File names derived from the workspace.
const (
	DefaultConfigFile   = "projgen.yaml"
	DefaultHistoryFile  = "history.db"
	projectsDirName     = "projects"
	templatesDirName    = "templates"
	defaultWorkspaceDir = "projgen-workspace"
)

// Settings is the persisted application configuration.
type Settings struct {
	WorkspacePath   string           `mapstructure:"workspacePath" yaml:"workspacePath" json:"workspacePath" validate:"required" jsonschema:"description=Root directory for projects and templates"`
	AdditionalPaths []string         `mapstructure:"additionalPaths" yaml:"additionalPaths,omitempty" json:"additionalPaths,omitempty" jsonschema:"description=Directories prepended to PATH"`
	Editor          EditorSettings   `mapstructure:"editor" yaml:"editor" json:"editor"`
	Logger          LoggerSettings   `mapstructure:"logger" yaml:"logger" json:"logger"`
	Network         NetworkSettings  `mapstructure:"network" yaml:"network" json:"network"`
	Templates       TemplateSettings `mapstructure:"templates" yaml:"templates" json:"templates"`
	History         HistorySettings  `mapstructure:"history" yaml:"history" json:"history"`
	DevelopMode     bool             `mapstructure:"developMode" yaml:"developMode" json:"developMode" jsonschema:"description=Enable developer features"`
}

// EditorSettings groups source editor preferences.
type EditorSettings struct {
	Style          string `mapstructure:"style" yaml:"style" json:"style" jsonschema:"default=default"`
	Font           string `mapstructure:"font" yaml:"font" json:"font"`
	SaveOnAction   bool   `mapstructure:"saveOnAction" yaml:"saveOnAction" json:"saveOnAction"`
	TabsToSpaces   bool   `mapstructure:"tabsToSpaces" yaml:"tabsToSpaces" json:"tabsToSpaces"`
	TabWidth       int    `mapstructure:"tabWidth" yaml:"tabWidth" json:"tabWidth" validate:"min=1,max=32" jsonschema:"minimum=1,maximum=32,default=4"`
	FormatterStyle string `mapstructure:"formatterStyle" yaml:"formatterStyle" json:"formatterStyle"`
}

// LoggerSettings groups log output preferences.
type LoggerSettings struct {
	Font  string `mapstructure:"font" yaml:"font" json:"font"`
	Level string `mapstructure:"level" yaml:"level" json:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR"`
	File  string `mapstructure:"file" yaml:"file,omitempty" json:"file,omitempty"`
}

// NetworkSettings groups network access preferences.
type NetworkSettings struct {
	Proxy ProxySettings `mapstructure:"proxy" yaml:"proxy" json:"proxy"`
}

// ProxySettings configures the network proxy.
type ProxySettings struct {
	Type           ProxyType `mapstructure:"type" yaml:"type" json:"type" validate:"oneof=none system custom" jsonschema:"enum=none,enum=system,enum=custom"`
	Host           string    `mapstructure:"host" yaml:"host,omitempty" json:"host,omitempty" validate:"omitempty,hostname_rfc1123|ip"`
	Port           string    `mapstructure:"port" yaml:"port,omitempty" json:"port,omitempty" validate:"omitempty,numeric"`
	UseCredentials bool      `mapstructure:"useCredentials" yaml:"useCredentials" json:"useCredentials"`
	Username       string    `mapstructure:"username" yaml:"username,omitempty" json:"username,omitempty"`
	Password       string    `mapstructure:"password" yaml:"password,omitempty" json:"password,omitempty"`
}

// TemplateSettings groups project template preferences.
type TemplateSettings struct {
	AutoUpdate bool `mapstructure:"autoUpdate" yaml:"autoUpdate" json:"autoUpdate"`
}

// HistorySettings configures the created project log.
type HistorySettings struct {
	Path  string `mapstructure:"path" yaml:"path,omitempty" json:"path,omitempty"`
	Limit int    `mapstructure:"limit" yaml:"limit" json:"limit" validate:"min=0" jsonschema:"default=10"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		WorkspacePath: defaultWorkspace(),
		Editor: EditorSettings{
			Style:          "default",
			Font:           "Monospace 10",
			SaveOnAction:   true,
			TabsToSpaces:   true,
			TabWidth:       4,
			FormatterStyle: "linux",
		},
		Logger: LoggerSettings{
			Font:  "Monospace 9",
			Level: "INFO",
		},
		Network: NetworkSettings{
			Proxy: ProxySettings{Type: ProxyNone},
		},
		Templates: TemplateSettings{AutoUpdate: true},
		History:   HistorySettings{Limit: 10},
	}
}

// Workspace returns the workspace directory with environment references
// expanded.
func (s Settings) Workspace() string {
	return ReplaceWithEnv(s.WorkspacePath)
}

// ProjectsPath is the default parent directory for new projects.
func (s Settings) ProjectsPath() string {
	return filepath.Join(s.Workspace(), projectsDirName)
}

// TemplatesPath is the user-writable template directory.
func (s Settings) TemplatesPath() string {
	return filepath.Join(s.Workspace(), templatesDirName)
}

// LocalConfigFilePath is where settings are stored by default.
func (s Settings) LocalConfigFilePath() string {
	return filepath.Join(s.Workspace(), DefaultConfigFile)
}

// HistoryPath is the sqlite database recording created projects.
func (s Settings) HistoryPath() string {
	if s.History.Path != "" {
		return ReplaceWithEnv(s.History.Path)
	}
	return filepath.Join(s.Workspace(), DefaultHistoryFile)
}

// Redacted returns a copy safe to print.
func (s Settings) Redacted() Settings {
	out := s
	out.AdditionalPaths = append([]string(nil), s.AdditionalPaths...)
	if out.Network.Proxy.Password != "" {
		out.Network.Proxy.Password = redacted
	}
	return out
}

const redacted = "[REDACTED]"

func defaultWorkspace() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultWorkspaceDir
	}
	return filepath.Join(home, defaultWorkspaceDir)
}

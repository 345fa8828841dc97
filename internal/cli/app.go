package cli

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/goliatone/go-projectgen/pkg/catalog"
	"github.com/goliatone/go-projectgen/pkg/config"
	"github.com/goliatone/go-projectgen/pkg/history"
	"github.com/goliatone/go-projectgen/pkg/renderers/tui"
)

// App holds the state shared by every command of one invocation.
type App struct {
	Store  *config.Store
	Logger *slog.Logger
	closer io.Closer

	configPath string
	logLevel   string
	logFile    string

	bundled fs.FS
	driver  tui.PromptDriver
}

// Option configures the command tree, mostly for tests.
type Option func(*App)

// WithBundledTemplates replaces the embedded template directory.
func WithBundledTemplates(fsys fs.FS) Option {
	return func(a *App) {
		a.bundled = fsys
	}
}

// WithPromptDriver replaces the survey prompt driver.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *App) {
		a.driver = driver
	}
}

// initialize loads settings and configures the logger. Flags override the
// logger settings from the file.
func (a *App) initialize(stderr io.Writer) error {
	store, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := store.Settings()

	level := settings.Logger.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	file := settings.Logger.File
	if a.logFile != "" {
		file = a.logFile
	}
	logger, closer, err := setupLogger(level, config.ReplaceWithEnv(file), stderr)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	a.Store = store
	a.Logger = logger
	a.closer = closer

	if err := settings.AdjustEnv(); err != nil {
		logger.Warn("failed to adjust PATH", "error", err)
	}
	logger.Debug("settings loaded", "path", store.Path(), "workspace", settings.Workspace())
	return nil
}

// Cleanup releases resources opened by initialize.
func (a *App) Cleanup() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Catalog lists the bundled templates shadowed by the user template
// directory.
func (a *App) Catalog() (*catalog.Catalog, error) {
	return catalog.Load(a.bundled, a.Store.Settings().TemplatesPath())
}

// History opens the created-project database.
func (a *App) History() (*history.Store, error) {
	return history.Open(a.Store.Settings().HistoryPath())
}

// Prompter returns the terminal renderer used for interactive input. Prompts
// are drawn on stderr so stdout only carries command output.
func (a *App) Prompter() (*tui.Renderer, error) {
	return tui.New(
		tui.WithStdio(terminal.Stdio{In: os.Stdin, Out: os.Stderr, Err: os.Stderr}),
		tui.WithPromptDriver(a.driver),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
	)
}

func setupLogger(levelName, file string, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level

	switch strings.ToUpper(strings.TrimSpace(levelName)) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if file == "" {
		// stdout carries command output, so logs go to stderr.
		handler := slog.NewTextHandler(stderr, opts)
		return slog.New(handler), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, opts)
	return slog.New(handler), f, nil
}

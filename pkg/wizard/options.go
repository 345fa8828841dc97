package wizard

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-projectgen/pkg/config"
	"github.com/goliatone/go-projectgen/pkg/editor"
	"github.com/goliatone/go-projectgen/pkg/project"
)

// Recorder receives every project the wizard creates.
type Recorder interface {
	Record(ctx context.Context, p project.Project, template string) error
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithRegistry overrides the editor registry. Defaults to editor.Default().
func WithRegistry(registry *editor.Registry) Option {
	return func(w *Wizard) {
		if registry != nil {
			w.registry = registry
		}
	}
}

// WithDefaultProjectPath sets the directory used when no project path is
// given.
func WithDefaultProjectPath(path string) Option {
	return func(w *Wizard) {
		w.defaultPath = path
	}
}

// WithSettings takes the default project directory from settings.
func WithSettings(settings config.Settings) Option {
	return func(w *Wizard) {
		w.defaultPath = settings.ProjectsPath()
	}
}

// WithRecorder records created projects, typically in the history store.
func WithRecorder(recorder Recorder) Option {
	return func(w *Wizard) {
		w.recorder = recorder
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithStrictTypes makes SelectTemplate fail with ErrUnknownType instead of
// falling back to free text for unregistered types.
func WithStrictTypes() Option {
	return func(w *Wizard) {
		w.strict = true
	}
}

// WithOverwrite lets Create replace an existing project file.
func WithOverwrite() Option {
	return func(w *Wizard) {
		w.overwrite = true
	}
}

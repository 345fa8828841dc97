package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-projectgen/pkg/catalog"
	"github.com/goliatone/go-projectgen/pkg/editor"
	"github.com/goliatone/go-projectgen/pkg/placeholder"
	"github.com/goliatone/go-projectgen/pkg/project"
)

// Row is one editable parameter: a placeholder marker paired with its current
// value. Duplicate markers produce duplicate rows.
type Row struct {
	Name  string `json:"name" yaml:"name"`
	Key   string `json:"key" yaml:"key"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Value string `json:"value" yaml:"value"`
	// Editor is only meaningful when HasEditor is true.
	Editor    editor.Descriptor `json:"editor" yaml:"editor"`
	HasEditor bool              `json:"hasEditor" yaml:"hasEditor"`
}

// Wizard collects everything needed to create a project from a template.
type Wizard struct {
	catalog     *catalog.Catalog
	registry    *editor.Registry
	recorder    Recorder
	logger      *slog.Logger
	strict      bool
	overwrite   bool
	defaultPath string

	entry       catalog.Entry
	selected    bool
	rows        []Row
	projectPath string
	projectName string
}

// New builds a wizard over cat. When a default project path is configured it
// is created if missing and becomes the initial project path.
func New(cat *catalog.Catalog, options ...Option) (*Wizard, error) {
	if cat == nil {
		return nil, fmt.Errorf("wizard: catalog is nil")
	}
	w := &Wizard{
		catalog:  cat,
		registry: editor.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}

	if w.defaultPath != "" {
		path, err := ResolveProjectPath("", w.defaultPath)
		if err != nil {
			return nil, err
		}
		w.projectPath = path
	}
	return w, nil
}

// Catalog returns the catalog the wizard selects from.
func (w *Wizard) Catalog() *catalog.Catalog {
	return w.catalog
}

// SelectTemplate makes name the current template and rebuilds the rows from
// its placeholders. A template that cannot be read yields zero rows.
func (w *Wizard) SelectTemplate(name string) error {
	entry, ok := w.catalog.Lookup(name)
	if !ok {
		w.entry, w.selected, w.rows = catalog.Entry{}, false, nil
		return fmt.Errorf("wizard: %w: %q", catalog.ErrTemplateNotFound, name)
	}
	w.entry, w.selected, w.rows = entry, true, nil

	text, err := entry.Read()
	if err != nil {
		w.logger.Warn("template unreadable", "template", entry.Name, "path", entry.Path, "error", err)
		return nil
	}

	placeholders := placeholder.Extract(text)
	rows := make([]Row, 0, len(placeholders))
	for _, p := range placeholders {
		row := w.rowFor(p)
		if !row.HasEditor {
			if w.strict {
				w.entry, w.selected, w.rows = catalog.Entry{}, false, nil
				return fmt.Errorf("%w: %q for %q in %s", ErrUnknownType, p.Type, p.Key, entry.Name)
			}
			w.logger.Warn("no editor for placeholder type, using free text",
				"template", entry.Name, "placeholder", p.Key, "type", p.Type)
		}
		rows = append(rows, row)
	}
	w.rows = rows
	w.logger.Debug("template selected", "template", entry.Name, "source", entry.Source, "rows", len(rows))
	return nil
}

// LoadTemplate adds an arbitrary template file to the catalog and selects it.
func (w *Wizard) LoadTemplate(file string) error {
	entry, err := w.catalog.Add(file)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	if !samePath(entry.Path, file) {
		w.logger.Warn("catalog already lists a template with this name, using it instead",
			"template", entry.Name, "requested", file, "using", entry.Path)
	}
	return w.SelectTemplate(entry.Name)
}

// Template returns the selected catalog entry.
func (w *Wizard) Template() (catalog.Entry, bool) {
	return w.entry, w.selected
}

// Rows returns a copy of the parameter rows in document order.
func (w *Wizard) Rows() []Row {
	out := make([]Row, len(w.rows))
	copy(out, w.rows)
	return out
}

// SetValue assigns value to every row whose key matches. key accepts the
// display name or the marker key. Values are checked against each row's
// editor.
func (w *Wizard) SetValue(key, value string) error {
	key = placeholder.KeyOf(strings.TrimSpace(key))
	matched := false
	for i := range w.rows {
		row := &w.rows[i]
		if row.Key != key {
			continue
		}
		matched = true
		next := value
		if row.HasEditor {
			if err := row.Editor.Validate(value); err != nil {
				return fmt.Errorf("wizard: %s: %w", row.Name, err)
			}
			next = row.Editor.Normalize(value)
		}
		row.Value = next
	}
	if !matched {
		return fmt.Errorf("%w: %q", ErrUnknownPlaceholder, key)
	}
	return nil
}

// SetRows replaces the row values with those of rows, matched by position.
// It is the hand-off point for presentation layers that edited a copy.
func (w *Wizard) SetRows(rows []Row) error {
	if len(rows) != len(w.rows) {
		return fmt.Errorf("wizard: expected %d rows, got %d", len(w.rows), len(rows))
	}
	for i, row := range rows {
		current := &w.rows[i]
		if row.Key != current.Key {
			return fmt.Errorf("wizard: row %d is %q, got %q", i, current.Key, row.Key)
		}
		if current.HasEditor {
			if err := current.Editor.Validate(row.Value); err != nil {
				return fmt.Errorf("wizard: %s: %w", current.Name, err)
			}
		}
	}
	for i, row := range rows {
		value := row.Value
		if w.rows[i].HasEditor {
			value = w.rows[i].Editor.Normalize(value)
		}
		w.rows[i].Value = value
	}
	return nil
}

// Values returns the row values in row order, ready for substitution.
func (w *Wizard) Values() []placeholder.Value {
	out := make([]placeholder.Value, 0, len(w.rows))
	for _, row := range w.rows {
		out = append(out, placeholder.Value{Name: row.Name, Value: row.Value})
	}
	return out
}

// Render substitutes the row values into text.
func (w *Wizard) Render(text string) string {
	return placeholder.Substitute(text, w.Values())
}

// TemplateText returns the selected template rendered with the row values, or
// "" when no template is selected or it cannot be read.
func (w *Wizard) TemplateText() string {
	text, err := w.renderTemplate()
	if err != nil {
		return ""
	}
	return text
}

// SetProjectPath sets the directory the project file is written to.
func (w *Wizard) SetProjectPath(path string) {
	w.projectPath = strings.TrimSpace(path)
}

// ProjectPath returns the project directory.
func (w *Wizard) ProjectPath() string {
	return w.projectPath
}

// SetProjectName sets the project file name.
func (w *Wizard) SetProjectName(name string) {
	w.projectName = strings.TrimSpace(name)
}

// ProjectName returns the project file name.
func (w *Wizard) ProjectName() string {
	return w.projectName
}

// SetOverwrite controls whether Create may replace an existing project file.
func (w *Wizard) SetOverwrite(overwrite bool) {
	w.overwrite = overwrite
}

// ProjectFile joins the project path and name. No separator is added when
// the path is empty.
func (w *Wizard) ProjectFile() string {
	if w.projectPath == "" {
		return w.projectName
	}
	return w.projectPath + string(os.PathSeparator) + w.projectName
}

// CanCreate reports whether the selected template exists, the project path
// exists and a project name is set.
func (w *Wizard) CanCreate() bool {
	if !w.selected || !w.entry.Exists() {
		return false
	}
	if w.projectName == "" || w.projectPath == "" {
		return false
	}
	info, err := os.Stat(w.projectPath)
	return err == nil && info.IsDir()
}

// Create renders the template into ProjectFile and records the result.
func (w *Wizard) Create(ctx context.Context) (project.Project, error) {
	if err := ctx.Err(); err != nil {
		return project.Project{}, err
	}
	if !w.CanCreate() {
		return project.Project{}, ErrIncomplete
	}

	text, err := w.renderTemplate()
	if err != nil {
		return project.Project{}, err
	}

	file := w.ProjectFile()
	if _, err := os.Stat(file); err == nil {
		if !w.overwrite {
			return project.Project{}, fmt.Errorf("%w: %s", ErrProjectExists, file)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return project.Project{}, fmt.Errorf("wizard: stat %s: %w", file, err)
	}

	if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
		return project.Project{}, fmt.Errorf("wizard: write %s: %w", file, err)
	}

	p := project.New(file)
	w.logger.Info("project created", "file", p.File, "template", w.entry.Name)

	if w.recorder != nil {
		if err := w.recorder.Record(ctx, p, w.entry.Name); err != nil {
			w.logger.Warn("failed to record project", "file", p.File, "error", err)
		}
	}
	return p, nil
}

func (w *Wizard) renderTemplate() (string, error) {
	if !w.selected {
		return "", fmt.Errorf("wizard: no template selected")
	}
	text, err := w.entry.Read()
	if err != nil {
		return "", fmt.Errorf("wizard: %w", err)
	}
	return w.Render(text), nil
}

func (w *Wizard) rowFor(p placeholder.Placeholder) Row {
	row := Row{
		Name:  p.Name,
		Key:   p.Key,
		Type:  p.Type,
		Value: p.Default,
	}
	kind := p.Type
	if kind == "" {
		kind = editor.KindString
	}
	if desc, ok := w.registry.Create(kind, p.Default); ok {
		row.Editor = desc
		row.HasEditor = true
		row.Value = desc.Default
	}
	return row
}

// ResolveProjectPath returns the absolute project directory, using fallback
// when path is empty and creating the directory when it is missing.
func ResolveProjectPath(path, fallback string) (string, error) {
	dir := strings.TrimSpace(path)
	if dir == "" {
		dir = strings.TrimSpace(fallback)
	}
	if dir == "" {
		return "", fmt.Errorf("wizard: project path is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("wizard: resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("wizard: create %s: %w", abs, err)
	}
	return abs, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Extension is the suffix of template files discovered in directories.
const Extension = ".template"

// Source records where a template entry came from.
type Source string

const (
	SourceUser    Source = "user"
	SourceBundled Source = "bundled"
	SourceLoaded  Source = "loaded"
)

// Entry is a single selectable template.
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Source Source `json:"source" yaml:"source"`

	fsys fs.FS
}

// Catalog lists templates from the user directory followed by bundled
// templates that the user directory does not shadow.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

// Load builds a catalog from the bundled filesystem and the user template
// directory. A missing user directory is treated as empty and a nil bundled
// filesystem is skipped.
func Load(bundled fs.FS, userDir string) (*Catalog, error) {
	c := &Catalog{}

	if userDir = strings.TrimSpace(userDir); userDir != "" {
		abs, err := filepath.Abs(userDir)
		if err != nil {
			return nil, fmt.Errorf("catalog: resolve %s: %w", userDir, err)
		}
		names, err := templateNames(os.DirFS(abs))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog: read user templates %s: %w", abs, err)
		}
		for _, name := range names {
			c.entries = append(c.entries, Entry{
				Name:   baseName(name),
				Path:   filepath.Join(abs, filepath.FromSlash(name)),
				Source: SourceUser,
			})
		}
	}

	if bundled != nil {
		names, err := templateNames(bundled)
		if err != nil {
			return nil, fmt.Errorf("catalog: read bundled templates: %w", err)
		}
		for _, name := range names {
			base := baseName(name)
			if c.indexLocked(base) >= 0 {
				continue
			}
			c.entries = append(c.entries, Entry{
				Name:   base,
				Path:   name,
				Source: SourceBundled,
				fsys:   bundled,
			})
		}
	}

	return c, nil
}

// Entries returns a copy of the catalog in display order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Entry(nil), c.entries...)
}

// Names returns entry names in display order.
func (c *Catalog) Names() []string {
	entries := c.Entries()
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.Name
	}
	return out
}

// Lookup returns the entry with the supplied base name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexLocked(strings.TrimSpace(name))
	if idx < 0 {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Add registers an arbitrary template file. When an entry with the same base
// name exists it is returned unchanged; otherwise the file is inserted at the
// front of the catalog. Any extension is accepted.
func (c *Catalog) Add(file string) (Entry, error) {
	if c == nil {
		return Entry{}, fmt.Errorf("catalog: catalog is nil")
	}
	file = strings.TrimSpace(file)
	if file == "" {
		return Entry{}, fmt.Errorf("catalog: template path is required")
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: resolve %s: %w", file, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	name := baseName(filepath.Base(abs))
	if idx := c.indexLocked(name); idx >= 0 {
		return c.entries[idx], nil
	}
	entry := Entry{Name: name, Path: abs, Source: SourceLoaded}
	c.entries = append([]Entry{entry}, c.entries...)
	return entry, nil
}

// Read returns the text of the named template.
func (c *Catalog) Read(name string) (string, error) {
	entry, ok := c.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return entry.Read()
}

// Exists reports whether the entry's file can be found.
func (e Entry) Exists() bool {
	if e.fsys != nil {
		_, err := fs.Stat(e.fsys, e.Path)
		return err == nil
	}
	if e.Path == "" {
		return false
	}
	info, err := os.Stat(e.Path)
	return err == nil && !info.IsDir()
}

// Read returns the entry's template text.
func (e Entry) Read() (string, error) {
	var (
		data []byte
		err  error
	)
	if e.fsys != nil {
		data, err = fs.ReadFile(e.fsys, e.Path)
	} else {
		data, err = os.ReadFile(e.Path)
	}
	if err != nil {
		return "", fmt.Errorf("catalog: read %s: %w", e.Path, err)
	}
	return string(data), nil
}

func (c *Catalog) indexLocked(name string) int {
	for i, entry := range c.entries {
		if entry.Name == name {
			return i
		}
	}
	return -1
}

// templateNames lists top-level *.template files in fsys sorted by name.
func templateNames(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// baseName strips the directory and every extension, matching how template
// names are shown ("app.c.template" -> "app").
func baseName(file string) string {
	base := path.Base(filepath.ToSlash(file))
	if idx := strings.Index(base, "."); idx > 0 {
		return base[:idx]
	}
	return base
}

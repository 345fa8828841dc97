// Package project describes an opened project file.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a project file does not exist.
var ErrNotFound = errors.New("project: file not found")

// Project identifies a project by its file. Name is the file base name without
// extension and Dir the directory holding it.
type Project struct {
	File string `json:"file" yaml:"file"`
	Name string `json:"name" yaml:"name"`
	Dir  string `json:"dir" yaml:"dir"`
}

// New describes file without touching the filesystem.
func New(file string) Project {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	base := filepath.Base(abs)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = base
	}
	return Project{File: abs, Name: name, Dir: filepath.Dir(abs)}
}

// Open describes an existing project file.
func Open(file string) (Project, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		return Project{}, fmt.Errorf("project: file is required")
	}
	info, err := os.Stat(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Project{}, fmt.Errorf("%w: %s", ErrNotFound, file)
		}
		return Project{}, fmt.Errorf("project: stat %s: %w", file, err)
	}
	if info.IsDir() {
		return Project{}, fmt.Errorf("project: %s is a directory", file)
	}
	return New(file), nil
}

// Path joins a name relative to the project directory.
func (p Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Dir}, elem...)...)
}

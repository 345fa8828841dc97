package wizard

import "errors"

var (
	// ErrUnknownType is returned in strict mode when a placeholder names a
	// type without a registered editor.
	ErrUnknownType = errors.New("wizard: unknown placeholder type")
	// ErrUnknownPlaceholder is returned when a value targets a key that is not
	// part of the selected template.
	ErrUnknownPlaceholder = errors.New("wizard: unknown placeholder")
	// ErrProjectExists is returned when the project file is already present.
	ErrProjectExists = errors.New("wizard: project file already exists")
	// ErrIncomplete is returned by Create when the template, project path or
	// project name is missing.
	ErrIncomplete = errors.New("wizard: template, project path and name are required")
)

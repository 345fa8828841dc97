package editor

import "errors"

var (
	// ErrDuplicateKind is returned when a kind name is registered twice.
	ErrDuplicateKind = errors.New("editor: kind already registered")
	// ErrInvalidValue signals a value rejected by a descriptor.
	ErrInvalidValue = errors.New("editor: invalid value")
)

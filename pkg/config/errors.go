package config

import "errors"

var (
	// ErrUnknownKey is returned when a dotted key does not name a setting.
	ErrUnknownKey = errors.New("config: unknown key")
	// ErrInvalidSettings wraps validation failures.
	ErrInvalidSettings = errors.New("config: invalid settings")
)

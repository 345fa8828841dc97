package tui

import "errors"

var (
	// ErrAborted is returned when the user interrupts a prompt with Ctrl+C.
	ErrAborted = errors.New("tui: prompt aborted")
	// ErrNoOptions is returned for a choice with nothing to choose from.
	ErrNoOptions = errors.New("tui: no options to choose from")
)

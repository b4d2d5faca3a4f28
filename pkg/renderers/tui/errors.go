package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoParameters is returned when the form has nothing to edit.
	ErrNoParameters = errors.New("tui: form has no parameters")
)

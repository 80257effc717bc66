package tui

import "errors"

var (
	// ErrAborted signals the user cancelled the wizard or interrupted input
	// (Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned when Run is called without a session.
	ErrNoSession = errors.New("tui: session is required")
	// ErrUnknownStep is returned when the form has no section for the
	// session's active step.
	ErrUnknownStep = errors.New("tui: no section for step")
)

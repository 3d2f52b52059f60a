package tools

import "errors"

var (
	// ErrToolNotFound indicates no local, PATH or npx command could be resolved.
	ErrToolNotFound = errors.New("tool not found")
	// ErrToolExecutionFailed indicates the tool exited non-zero or could not start.
	ErrToolExecutionFailed = errors.New("tool execution failed")
	// ErrToolOutputUnparseable indicates stdout was empty or not a JSON object.
	ErrToolOutputUnparseable = errors.New("tool output unparseable")
	// ErrNotConfigured indicates the tool's configuration file is absent.
	ErrNotConfigured = errors.New("tool not configured")
)

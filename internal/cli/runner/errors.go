// Package runner provides an interceptor-based command execution framework
// for CLI commands, giving every command consistent config loading, logging
// and flag handling.
package runner

import "errors"

// Standard errors returned by interceptors
var (
	// ErrNoConfig is returned when a command needs configuration but none
	// could be loaded
	ErrNoConfig = errors.New("configuration not loaded")
)

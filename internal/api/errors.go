package api

import (
	"errors"
	"fmt"
	"strings"
)

// ServerConfigNotFoundError is returned when a server name cannot be resolved
// to a configuration, either because the user config does not mention it or
// because the package it references exists in neither the entry nor the catalog.
type ServerConfigNotFoundError struct {
	// Name is the user-facing server name (or package name) that was looked up
	Name string

	// Message provides a custom error message if the default format is insufficient
	Message string
}

// Error implements the error interface for ServerConfigNotFoundError.
//
// Returns:
//   - string: The custom message if set, otherwise a formatted default message
func (e *ServerConfigNotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server configuration %q not found", e.Name)
}

// NewServerConfigNotFoundError creates a ServerConfigNotFoundError for name.
//
// Example:
//
//	return api.NewServerConfigNotFoundError("github")
func NewServerConfigNotFoundError(name string) *ServerConfigNotFoundError {
	return &ServerConfigNotFoundError{Name: name}
}

// NewServerConfigNotFoundErrorWithMessage creates a ServerConfigNotFoundError
// carrying a custom message.
func NewServerConfigNotFoundErrorWithMessage(name, message string) *ServerConfigNotFoundError {
	return &ServerConfigNotFoundError{Name: name, Message: message}
}

// IsServerConfigNotFound checks if an error is, or wraps, a ServerConfigNotFoundError.
//
// Example:
//
//	if _, err := p.ConvertToStdioParams(name); api.IsServerConfigNotFound(err) {
//	    // offer the list of configured servers
//	}
func IsServerConfigNotFound(err error) bool {
	var notFoundErr *ServerConfigNotFoundError
	return errors.As(err, &notFoundErr)
}

// SetupOperation identifies which setup step failed.
type SetupOperation string

const (
	// SetupOperationClone is the repository clone step.
	SetupOperationClone SetupOperation = "clone"
	// SetupOperationScript is the setup script execution step.
	SetupOperationScript SetupOperation = "setup script"
)

// SetupError reports a failed repository clone or setup script. It always
// carries the command (or repository URL) that failed together with the
// diagnostic output captured from the external tool, so callers can show
// actionable output such as git's stderr.
type SetupError struct {
	// Operation is the setup step that failed
	Operation SetupOperation

	// Target is the repository URL for clones, or the working directory for scripts
	Target string

	// Command is the command line that was executed
	Command string

	// Stderr is the trimmed standard error output of the failed command
	Stderr string

	// Err is the underlying error (exit status, I/O failure)
	Err error
}

// Error implements the error interface for SetupError.
func (e *SetupError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}

	var msg string
	switch e.Operation {
	case SetupOperationClone:
		msg = fmt.Sprintf("failed to clone repository %s", e.Target)
	case SetupOperationScript:
		msg = fmt.Sprintf("setup script failed in %s", e.Target)
	default:
		msg = fmt.Sprintf("setup failed for %s", e.Target)
	}
	if e.Command != "" {
		msg = fmt.Sprintf("%s (command: %s)", msg, e.Command)
	}
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SetupError) Unwrap() error {
	return e.Err
}

// IsSetupError checks if an error is, or wraps, a SetupError.
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return errors.As(err, &setupErr)
}

package config

import (
	"errors"
	"fmt"
)

// ParseError is returned when a config or catalog file exists but its content
// cannot be decoded. It is distinct from the fs.ErrNotExist error returned for
// missing files.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decoder error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError checks if an error is, or wraps, a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

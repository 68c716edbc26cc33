package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRoot is wrapped by every root path precondition failure
var ErrInvalidRoot = errors.New("invalid workspace root")

// InvalidPathError reports a scan root that does not exist or is not a directory
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("cannot scan %s: %s", e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidRoot
func (e *InvalidPathError) Unwrap() error {
	return ErrInvalidRoot
}

// ConfigError wraps a configuration loading or validation failure
type ConfigError struct {
	Message string
	Err     error
}

// NewConfigError creates a ConfigError
func NewConfigError(message string, err error) *ConfigError {
	return &ConfigError{Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCorruptConfig indicates a stored config blob that is not a complete WidgetConfig
	ErrCorruptConfig = errors.New("stored widget config is corrupt")
)

// InvalidPathError is returned when a field path does not address an updatable leaf
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid config path %q: %s", e.Path, e.Reason)
}

// InvalidValueError is returned when a leaf value has the wrong type or is out of range
type InvalidValueError struct {
	Path   string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Path, e.Reason)
}

// InvalidIdentifierError is returned when a widget id cannot be embedded safely
type InvalidIdentifierError struct {
	ID     string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid widget id %q: %s", e.ID, e.Reason)
}

// UnserializableConfigError is returned when a config cannot be serialized into a widget script
type UnserializableConfigError struct {
	Reason string
	Err    error
}

func (e *UnserializableConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unserializable widget config: %s: %v", e.Reason, e.Err)
	}
	return "unserializable widget config: " + e.Reason
}

func (e *UnserializableConfigError) Unwrap() error {
	return e.Err
}

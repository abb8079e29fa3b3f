package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrFileNotFound indicates an explicitly requested config file is missing.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidPath indicates an invalid setting path.
	ErrInvalidPath = errors.New("invalid setting path")

	// ErrInvalidValue indicates a setting whose value cannot be used.
	ErrInvalidValue = errors.New("invalid setting value")
)

// TypeError is returned when a setting has the wrong type.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ValueError reports a setting with the right type but an unusable value.
type ValueError struct {
	Path    string
	Value   any
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrInvalidValue.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

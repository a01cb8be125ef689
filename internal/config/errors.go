// Package config provides the generation manifest for expressgen: which
// folders exist, which files are rendered from which templates, and which
// packages are installed. Defaults mirror the classic Express/Mongoose
// layout; a YAML file may override any section.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for manifest operations.
var (
	// ErrManifestNotFound indicates the manifest file does not exist.
	ErrManifestNotFound = errors.New("config: manifest file not found")

	// ErrInvalidManifest indicates the manifest failed validation.
	ErrInvalidManifest = errors.New("config: invalid manifest")

	// ErrInvalidYAML indicates invalid YAML syntax in a manifest file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrUnknownTemplate indicates a manifest entry names a template that is not embedded.
	ErrUnknownTemplate = errors.New("config: unknown template")

	// ErrUnknownKind indicates a requires entry names a kind no model file declares.
	ErrUnknownKind = errors.New("config: unknown model file kind")

	// ErrUnsafePath indicates a path that is absolute or escapes the project root.
	ErrUnsafePath = errors.New("config: path escapes project root")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained validation errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidManifest {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}

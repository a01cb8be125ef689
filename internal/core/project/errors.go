// Package project generates the Express/Mongoose project skeleton: folders,
// per-model source files, shared utilities, the entry point and the initial
// .env and .gitignore files.
package project

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidRoot indicates the given project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrPathTraversal indicates a generated path would escape the project root.
	ErrPathTraversal = errors.New("path escapes project root")

	// ErrNotADirectory indicates a folder path exists but is a regular file.
	ErrNotADirectory = errors.New("path exists and is not a directory")
)

// Step names a top-level generation step.
type Step string

// Generation steps.
const (
	StepFolders      Step = "folders"
	StepInstall      Step = "install"
	StepInitialFiles Step = "initial-files"
	StepModelFiles   Step = "model-files"
	StepUtilities    Step = "utilities"
	StepEntry        Step = "entry"
)

// StepError records the failure of one generation step.
type StepError struct {
	Step Step
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// StepErrors aggregates the failures of all steps in one run.
type StepErrors struct {
	Errors []*StepError
}

// Error implements the error interface.
func (e *StepErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d step(s) failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap returns the step errors so errors.Is and errors.As see each of them.
func (e *StepErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Failed reports whether the given step failed.
func (e *StepErrors) Failed(step Step) bool {
	for _, err := range e.Errors {
		if err.Step == step {
			return true
		}
	}
	return false
}

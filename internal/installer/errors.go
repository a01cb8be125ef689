package installer

import "errors"

// Sentinel errors for dependency installation.
var (
	// ErrCommandFailed indicates a package manager command exited non-zero
	// or wrote to its error stream.
	ErrCommandFailed = errors.New("installer: command failed")

	// ErrPackageManagerNotFound indicates the package manager binary is not on PATH.
	ErrPackageManagerNotFound = errors.New("installer: package manager not found")
)

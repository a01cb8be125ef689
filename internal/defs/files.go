// Package defs holds names and permissions shared by the manifest defaults
// and the generator.
package defs

import "os"

// Files written at the project root.
const (
	// EntryJS is the Express entry point.
	EntryJS = "index.js"

	// EnvFile holds the server's environment variables.
	EnvFile = ".env"

	// GitignoreFile lists paths git should ignore.
	GitignoreFile = ".gitignore"

	// GitignoreEnvEntry is the line appended to an existing .gitignore.
	GitignoreEnvEntry = "./env"
)

// Nested folders.
const (
	// UtilitiesDir holds shared helpers.
	UtilitiesDir = "utilities"

	// ConfigurationsDir holds the database and upload configuration modules.
	ConfigurationsDir = UtilitiesDir + "/configurations"
)

// Permissions for generated content.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

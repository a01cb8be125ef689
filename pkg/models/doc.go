// Package models provides the shared data model of expressgen.
//
// The answers collected by the wizard (or read from an answers file) are
// stored in a [ProjectAnswers] value that is built once and then only read
// by the generation steps.
//
// # Model Names
//
// A [ModelName] is the raw token typed by the user. Two derived forms are
// used by the templates:
//
//	name := models.NewModelName("userProfile")
//	name.Lower()       // "userprofile"  (identifiers, file names)
//	name.Capitalized() // "UserProfile"  (schema and model type names)
//
// Duplicate names are kept as entered; see [ProjectAnswers.DuplicateModels].
package models

package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ModelName is a data model name as entered by the user.
type ModelName string

// NewModelName trims surrounding whitespace and applies NFC normalization so
// that visually identical names produce identical file names.
func NewModelName(raw string) ModelName {
	return ModelName(norm.NFC.String(strings.TrimSpace(raw)))
}

// String returns the name as entered.
func (n ModelName) String() string {
	return string(n)
}

// Lower returns the lowercase form used for identifiers and file names.
func (n ModelName) Lower() string {
	return strings.ToLower(string(n))
}

// Capitalized returns the name with its first rune upper-cased and the rest
// left untouched ("userProfile" -> "UserProfile").
func (n ModelName) Capitalized() string {
	s := string(n)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ProjectAnswers holds everything the generator needs to know about the
// project. It is created once and treated as read-only afterwards.
type ProjectAnswers struct {
	WantsAuthorization bool        `yaml:"authorization" json:"authorization"`
	WantsValidation    bool        `yaml:"validation" json:"validation"`
	Models             []ModelName `yaml:"models" json:"models"`
}

// ModelCount returns the number of declared models, duplicates included.
func (a *ProjectAnswers) ModelCount() int {
	return len(a.Models)
}

// DuplicateModels returns the lowercase forms that occur more than once,
// in order of first appearance. Later models with the same lowercase form
// overwrite the files of earlier ones.
func (a *ProjectAnswers) DuplicateModels() []string {
	seen := make(map[string]int, len(a.Models))
	var dups []string
	for _, m := range a.Models {
		lower := m.Lower()
		seen[lower]++
		if seen[lower] == 2 {
			dups = append(dups, lower)
		}
	}
	return dups
}

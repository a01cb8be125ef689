package wizard

import (
	"strconv"
	"strings"
)

// ValidateYesNo accepts y, yes, n and no in any case, ignoring surrounding whitespace.
func ValidateYesNo(s string) error {
	_, err := ParseYesNo(s)
	return err
}

// ParseYesNo returns true for y/yes and false for n/no.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, ErrInvalidYesNo
}

// ValidateModelCount accepts a base-10 non-negative integer, ignoring surrounding whitespace.
func ValidateModelCount(s string) error {
	_, err := ParseModelCount(s)
	return err
}

// ParseModelCount returns the model count. Signs, fractions and trailing
// characters are rejected.
func ParseModelCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, ErrInvalidModelCount
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidModelCount
	}
	return n, nil
}

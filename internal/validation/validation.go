// Package validation checks the identifiers that cross the HTTP boundary
// before they reach the stores.
package validation

import (
	"regexp"
	"strings"
)

// MaxIDLength caps user and music identifiers.
const MaxIDLength = 64

var alphaNumericPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidID reports whether s is a well-formed user or music identifier:
// non-empty, alphanumeric, at most MaxIDLength characters.
func ValidID(s string) bool {
	if s == "" || len(s) > MaxIDLength {
		return false
	}
	return alphaNumericPattern.MatchString(s)
}

// ValidGenre reports whether a genre label is acceptable: non-blank and at
// most MaxIDLength characters. Labels may contain spaces ("old school").
func ValidGenre(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && len(s) <= MaxIDLength
}

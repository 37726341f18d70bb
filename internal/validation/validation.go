// Package validation provides functionality for normalizing and validating IATA airport codes.
package validation

import (
	"regexp"
	"strings"
)

// iataPattern matches exactly three uppercase Latin letters.
var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormaliseIATA trims surrounding whitespace and uppercases the given code.
func NormaliseIATA(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidIATA reports whether the given code is a well-formed, already-normalised IATA airport code.
func ValidIATA(code string) bool {
	return iataPattern.MatchString(code)
}

package validate

import (
	"go/token"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidName reports whether s is usable as a step, group or validator
// identifier: a snake_case name that is not a language keyword. Collected
// answers are emitted as fields of the generated bot's output, so names
// must survive as identifiers there.
func IsValidName(s string) bool {
	if !namePattern.MatchString(s) {
		return false
	}
	return !token.IsKeyword(s)
}

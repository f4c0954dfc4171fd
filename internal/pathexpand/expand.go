// Package pathexpand resolves environment variable references and a
// leading ~ in song file paths from playlist files.
package pathexpand

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrUnresolvedHome is returned when a path starts with ~ but HOME
	// is not set in the environment.
	ErrUnresolvedHome = errors.New("pathexpand: ~ used but HOME is not set")

	// ErrExpansionLoop is returned when ${...} substitution does not
	// settle within maxPasses, which indicates cyclic variable values.
	ErrExpansionLoop = errors.New("pathexpand: variable expansion did not terminate")
)

// maxPasses bounds recursive substitution. A variable whose value contains
// further ${...} references is resolved on the next pass, so nesting deeper
// than this fails rather than looping forever.
const maxPasses = 8

// Expand resolves a leading ~ and all ${NAME} tokens in raw against the
// current environment. Unset variables substitute as the empty string.
// The result is not checked for existence.
func Expand(raw string) (string, error) {
	s := raw
	if strings.HasPrefix(s, "~") {
		home, ok := os.LookupEnv("HOME")
		if !ok {
			return "", errors.Wrapf(ErrUnresolvedHome, "expanding %q", raw)
		}
		s = home + s[1:]
	}

	for pass := 0; pass < maxPasses; pass++ {
		out, changed := substitute(s)
		s = out
		if !changed {
			return s, nil
		}
	}
	if containsToken(s) {
		return "", errors.Wrapf(ErrExpansionLoop, "expanding %q", raw)
	}
	return s, nil
}

// substitute performs one left-to-right pass over s, replacing every
// well-formed ${NAME} token with the variable's value. Malformed tokens
// (no closing brace) are left untouched.
func substitute(s string) (string, bool) {
	var b strings.Builder
	changed := false
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		name := s[start+2 : start+end]
		b.WriteString(os.Getenv(name))
		changed = true
		s = s[start+end+1:]
	}
	return b.String(), changed
}

func containsToken(s string) bool {
	start := strings.Index(s, "${")
	return start >= 0 && strings.Contains(s[start:], "}")
}

// Package streamname normalizes log stream names into the collector-safe
// alphabet.
//
// Collectors key storage and downstream routing on the stream name, so the
// name must be stable and filesystem/topic safe. Sanitize keeps ASCII
// letters, digits, underscore and hyphen, and replaces every other rune
// with a single underscore.
package streamname

import "strings"

// Sanitize maps name onto the alphabet [A-Za-z0-9_-].
//
// Every rune outside the alphabet becomes exactly one underscore, so the
// output always has the same rune count as the input. Multi-byte runes
// collapse to one underscore, not one per encoded byte. Sanitize is a total
// function and idempotent; the empty string maps to itself.
func Sanitize(name string) string {
	// Common case: the name is already clean, return it without allocating.
	clean := true
	for _, r := range name {
		if !validRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if validRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func validRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

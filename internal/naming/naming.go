// Package naming validates and canonicalizes static group names.
package naming

import (
	"errors"
	"strings"
)

// Prefix is prepended to every managed group channel name.
const Prefix = "static-"

var (
	// ErrIllegalName means the raw name contains characters outside
	// lowercase letters, digits and dashes.
	ErrIllegalName = errors.New("name may only contain lowercase letters, numbers and dashes")
	// ErrReservedPrefix means the user supplied the static prefix themselves.
	ErrReservedPrefix = errors.New("name must not start with the reserved static prefix")
)

// Legal reports whether every character of the raw name is a lowercase
// ASCII letter, digit or dash. Legality is checked before normalization.
func Legal(raw string) bool {
	if raw == "" {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// Normalize canonicalizes a raw group name: trim, lowercase, underscores to
// dashes, then the static prefix. Input that already starts with "static" is
// rejected so the prefix is never doubled.
func Normalize(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(name, "static") {
		return "", ErrReservedPrefix
	}
	name = strings.ReplaceAll(name, "_", "-")
	return Prefix + name, nil
}

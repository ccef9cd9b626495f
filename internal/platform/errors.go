package platform

import "errors"

// Sentinel conditions surfaced by Client implementations. The router maps
// both to user-visible, non-fatal replies.
var (
	// ErrForbidden means the bot lacks the platform permission for the call.
	ErrForbidden = errors.New("platform: forbidden")
	// ErrNotFound means the addressed resource does not exist (anymore).
	ErrNotFound = errors.New("platform: not found")
)

// IsForbidden reports whether err is a permission failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

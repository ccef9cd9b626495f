package router

import "errors"

// userError carries the user-visible reply text for a failed command while
// keeping the underlying sentinel inspectable with errors.Is. Handlers wrap
// every expected failure; anything unwrapped is reported generically.
type userError struct {
	msg   string
	cause error
}

func (e *userError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.msg
}

func (e *userError) Unwrap() error { return e.cause }

// usererr wraps cause with the reply text shown to the sender.
func usererr(cause error, msg string) error {
	return &userError{msg: msg, cause: cause}
}

// userMessage extracts the reply text, if err carries one.
func userMessage(err error) (string, bool) {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg, true
	}
	return "", false
}

// Command-level sentinels not owned by an engine package.
var (
	errMultiline      = errors.New("multiline command")
	errNotInWorkspace = errors.New("sender not in workspace")
	errBlacklisted    = errors.New("sender blacklisted")
	errNotWhitelisted = errors.New("sender not whitelisted")
	errConfigFault    = errors.New("guild or category not found")
	errMissingName    = errors.New("group name argument missing")
	errExtraArgs      = errors.New("group name contains whitespace")
	errNothingAdded   = errors.New("no members to add")
	errNothingRemoved = errors.New("no members to remove")
)

package services

import "errors"

// Domain conflicts. They are reported to clients as ordinary messages, not failures.
// The text is the wire message body, hence the capitalisation.
var (
	ErrUsernameTaken = errors.New("Username already taken")
	ErrUserNotFound  = errors.New("User not found")
)

// ErrInvalidInput wraps field values the store cannot hold, such as a non-numeric duration.
var ErrInvalidInput = errors.New("invalid input")

// IsConflict reports whether err is a domain conflict rather than a failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrUserNotFound)
}

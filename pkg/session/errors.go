package session

import "errors"

var (
	// ErrInvalidSession indicates a nil session or an empty token.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrNoSessionInContext indicates the request carries no session.
	ErrNoSessionInContext = errors.New("session.not_in_context")
)

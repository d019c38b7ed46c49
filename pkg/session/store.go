package session

import "context"

// Store defines the interface for session persistence.
type Store interface {
	// Save creates or replaces a session keyed by its token.
	Save(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound when
	// missing and ErrSessionExpired when past its expiry.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions. Stores with native
	// TTL support may implement this as a no-op.
	DeleteExpired(ctx context.Context) error
}

package grants

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type grantKey struct {
	userID uuid.UUID
	role   string
	scope  Scope
}

// MemoryStore is an in-memory Store implementation for tests and local
// development. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	grants map[grantKey]struct{}
}

// NewMemoryStore creates an empty in-memory grant store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{grants: make(map[grantKey]struct{})}
}

// Grant records a capability triple. Idempotent.
func (s *MemoryStore) Grant(ctx context.Context, userID uuid.UUID, role string, scope Scope) error {
	if role == "" {
		return ErrEmptyRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.grants[grantKey{userID, role, scope}] = struct{}{}
	return nil
}

// Revoke removes a capability triple. Revoking a missing triple is a no-op.
func (s *MemoryStore) Revoke(ctx context.Context, userID uuid.UUID, role string, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.grants, grantKey{userID, role, scope})
	return nil
}

// Has reports whether the exact triple exists.
func (s *MemoryStore) Has(ctx context.Context, userID uuid.UUID, role string, scope Scope) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.grants[grantKey{userID, role, scope}]
	return ok, nil
}

// ListGlobal returns all global-scope role names held by the user.
func (s *MemoryStore) ListGlobal(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.ListForUser(ctx, userID, Global)
}

// ListForUser returns all role names the user holds in the scope, sorted.
func (s *MemoryStore) ListForUser(ctx context.Context, userID uuid.UUID, scope Scope) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var roles []string
	for k := range s.grants {
		if k.userID == userID && k.scope == scope {
			roles = append(roles, k.role)
		}
	}
	slices.Sort(roles)
	return roles, nil
}

// RevokeAllForUser removes every grant the user holds in the scope.
func (s *MemoryStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.grants {
		if k.userID == userID && k.scope == scope {
			delete(s.grants, k)
		}
	}
	return nil
}

// RevokeScope removes every grant in the scope, for all users.
func (s *MemoryStore) RevokeScope(ctx context.Context, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.grants {
		if k.scope == scope {
			delete(s.grants, k)
		}
	}
	return nil
}

// Snapshot captures the current state for transactional rollback in tests.
type Snapshot struct {
	grants map[grantKey]struct{}
}

// Snapshot returns a deep copy of the store state.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{grants: maps.Clone(s.grants)}
}

// Restore rolls the store back to a previously captured snapshot.
func (s *MemoryStore) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grants = maps.Clone(snap.grants)
}

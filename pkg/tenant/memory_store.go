package tenant

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store and UserStore.
// It is safe for concurrent use and makes defensive copies on the way in
// and out, so callers can never mutate stored state through aliases.
// Intended for tests and local development; production deployments use
// the pgstore package.
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]Tenant
	users   map[uuid.UUID]User
	members map[uuid.UUID]map[uuid.UUID]struct{} // tenant ID -> member user IDs
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants: make(map[uuid.UUID]Tenant),
		users:   make(map[uuid.UUID]User),
		members: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// GetTenant retrieves a tenant by ID.
func (s *MemoryStore) GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return &t, nil
}

// CreateTenant stores a new tenant. Assigns ID and timestamps when unset.
func (s *MemoryStore) CreateTenant(ctx context.Context, t *Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if _, exists := s.tenants[t.ID]; exists {
		return ErrTenantExists
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	s.tenants[t.ID] = *t
	return nil
}

// UpdateTenant replaces the stored tenant row.
func (s *MemoryStore) UpdateTenant(ctx context.Context, t *Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tenants[t.ID]
	if !ok {
		return ErrTenantNotFound
	}
	t.CreatedAt = stored.CreatedAt
	t.UpdatedAt = time.Now()

	s.tenants[t.ID] = *t
	return nil
}

// DeleteTenant removes the tenant row. Membership rows are left to the
// caller; the action layer detaches members first inside the same
// transaction.
func (s *MemoryStore) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[id]; !ok {
		return ErrTenantNotFound
	}
	delete(s.tenants, id)
	return nil
}

// AttachMember adds a membership row. Attaching an existing member is a no-op.
func (s *MemoryStore) AttachMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenantID]; !ok {
		return ErrTenantNotFound
	}
	if s.members[tenantID] == nil {
		s.members[tenantID] = make(map[uuid.UUID]struct{})
	}
	s.members[tenantID][userID] = struct{}{}
	return nil
}

// DetachMember removes a membership row. Detaching a non-member is a no-op.
func (s *MemoryStore) DetachMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.members[tenantID], userID)
	return nil
}

// DetachAllMembers removes every membership row for the tenant.
func (s *MemoryStore) DetachAllMembers(ctx context.Context, tenantID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.members, tenantID)
	return nil
}

// IsMember reports whether a membership row exists.
func (s *MemoryStore) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.members[tenantID][userID]
	return ok, nil
}

// MemberIDs returns the user IDs of all members of the tenant.
func (s *MemoryStore) MemberIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.members[tenantID]))
	for id := range s.members[tenantID] {
		ids = append(ids, id)
	}
	return ids, nil
}

// TenantsOwnedBy returns tenants owned by the user, oldest first.
func (s *MemoryStore) TenantsOwnedBy(ctx context.Context, userID uuid.UUID) ([]*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(t Tenant) bool { return t.OwnerID == userID }), nil
}

// TenantsWithMember returns tenants the user is a member of, oldest first.
func (s *MemoryStore) TenantsWithMember(ctx context.Context, userID uuid.UUID) ([]*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(t Tenant) bool {
		_, ok := s.members[t.ID][userID]
		return ok
	}), nil
}

// collect returns copies of matching tenants sorted by creation time.
// Callers must hold at least the read lock.
func (s *MemoryStore) collect(match func(Tenant) bool) []*Tenant {
	var result []*Tenant
	for _, t := range s.tenants {
		if match(t) {
			tt := t
			result = append(result, &tt)
		}
	}
	slices.SortFunc(result, func(a, b *Tenant) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result
}

// GetUser retrieves a user by ID.
func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// CreateUser stores a new user. Assigns ID and creation time when unset.
func (s *MemoryStore) CreateUser(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, exists := s.users[u.ID]; exists {
		return ErrUserExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = *u
	return nil
}

// Snapshot captures the current state for transactional rollback in tests.
type Snapshot struct {
	tenants map[uuid.UUID]Tenant
	users   map[uuid.UUID]User
	members map[uuid.UUID]map[uuid.UUID]struct{}
}

// Snapshot returns a deep copy of the store state.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		tenants: maps.Clone(s.tenants),
		users:   maps.Clone(s.users),
		members: make(map[uuid.UUID]map[uuid.UUID]struct{}, len(s.members)),
	}
	for tid, m := range s.members {
		snap.members[tid] = maps.Clone(m)
	}
	return snap
}

// Restore rolls the store back to a previously captured snapshot.
func (s *MemoryStore) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tenants = maps.Clone(snap.tenants)
	s.users = maps.Clone(snap.users)
	s.members = make(map[uuid.UUID]map[uuid.UUID]struct{}, len(snap.members))
	for tid, m := range snap.members {
		s.members[tid] = maps.Clone(m)
	}
}

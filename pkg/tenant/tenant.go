package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents one isolated workspace. Every tenant has exactly one
// owner; the owner is always also a member (enforced by the action layer,
// not by the storage schema).
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether the given user is the tenant's owner.
func (t *Tenant) IsOwnedBy(userID uuid.UUID) bool {
	return t != nil && t.OwnerID == userID
}

// User is the minimal identity this package needs. Authentication,
// passwords and profile data live elsewhere.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider loads a tenant by ID. It is the read-only subset of Store used
// by the context resolver; implementations must return ErrTenantNotFound
// when no tenant matches.
type Provider interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error)
}

// Store is the persistence contract for tenants and memberships.
// Membership is a plain many-to-many relation: the existence of a row is
// necessary and sufficient for "is member".
type Store interface {
	Provider

	CreateTenant(ctx context.Context, t *Tenant) error
	UpdateTenant(ctx context.Context, t *Tenant) error
	DeleteTenant(ctx context.Context, id uuid.UUID) error

	AttachMember(ctx context.Context, tenantID, userID uuid.UUID) error
	DetachMember(ctx context.Context, tenantID, userID uuid.UUID) error
	DetachAllMembers(ctx context.Context, tenantID uuid.UUID) error

	IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error)
	MemberIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error)

	// TenantsOwnedBy and TenantsWithMember return tenants ordered by
	// creation time, oldest first, so "first owned tenant" is stable.
	TenantsOwnedBy(ctx context.Context, userID uuid.UUID) ([]*Tenant, error)
	TenantsWithMember(ctx context.Context, userID uuid.UUID) ([]*Tenant, error)
}

// UserStore is the persistence contract for user identities.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	CreateUser(ctx context.Context, u *User) error
}

package grants

import (
	"context"

	"github.com/google/uuid"
)

// Well-known role names. RoleOwner exists only per-tenant and is granted
// exclusively by the create-tenant action; the general assign operation
// rejects it.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleMember     = "member"
	RoleSuperAdmin = "super-admin"
)

// Grant is one (user, role, scope) capability triple.
type Grant struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Scope  Scope     `json:"scope"`
}

// Store is the capability store behind all role checks. Implementations
// must treat Grant as find-or-create: granting an existing triple is a
// no-op, never a duplicate row.
type Store interface {
	// Grant records a capability triple. Idempotent.
	Grant(ctx context.Context, userID uuid.UUID, role string, scope Scope) error

	// Revoke removes a single capability triple. Revoking a missing
	// triple is a no-op.
	Revoke(ctx context.Context, userID uuid.UUID, role string, scope Scope) error

	// Has reports whether the exact triple exists.
	Has(ctx context.Context, userID uuid.UUID, role string, scope Scope) (bool, error)

	// ListGlobal returns all global-scope role names held by the user.
	ListGlobal(ctx context.Context, userID uuid.UUID) ([]string, error)

	// ListForUser returns all role names the user holds in the scope.
	ListForUser(ctx context.Context, userID uuid.UUID, scope Scope) ([]string, error)

	// RevokeAllForUser removes every grant the user holds in the scope.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, scope Scope) error

	// RevokeScope removes every grant in the scope, for all users.
	// Used when a tenant is deleted.
	RevokeScope(ctx context.Context, scope Scope) error
}

package authz

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Checker answers membership and role questions. All methods are pure
// reads; tenant-scoped role checks always pass the scope explicitly to
// the grant store, so no ambient scope state exists to corrupt.
type Checker struct {
	tenants        tenant.Store
	grants         grants.Store
	superRole      string
	dashboardRoles []string
}

// Option configures the checker.
type Option func(*Checker)

// WithSuperRole overrides the global role that grants access to every
// tenant. Defaults to "super-admin".
func WithSuperRole(role string) Option {
	return func(c *Checker) {
		c.superRole = role
	}
}

// WithDashboardRoles overrides the global roles allowed to view the
// platform dashboard. Defaults to super-admin, admin and manager.
func WithDashboardRoles(roles ...string) Option {
	return func(c *Checker) {
		c.dashboardRoles = roles
	}
}

// NewChecker creates a checker over the given stores.
func NewChecker(tenants tenant.Store, grantStore grants.Store, opts ...Option) *Checker {
	c := &Checker{
		tenants:        tenants,
		grants:         grantStore,
		superRole:      grants.RoleSuperAdmin,
		dashboardRoles: []string{grants.RoleSuperAdmin, grants.RoleAdmin, grants.RoleManager},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsMemberOf reports whether a membership row exists for (user, tenant).
func (c *Checker) IsMemberOf(ctx context.Context, userID, tenantID uuid.UUID) (bool, error) {
	return c.tenants.IsMember(ctx, tenantID, userID)
}

// IsOwnerOf reports whether the user owns the tenant. A missing tenant
// is simply not owned.
func (c *Checker) IsOwnerOf(ctx context.Context, userID, tenantID uuid.UUID) (bool, error) {
	t, err := c.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return false, nil
		}
		return false, err
	}
	return t.IsOwnedBy(userID), nil
}

// HasGlobalRole reports whether the user holds the role in global scope.
func (c *Checker) HasGlobalRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	return c.grants.Has(ctx, userID, role, grants.Global)
}

// HasTenantRole reports whether the user holds the role scoped to the
// given tenant. The scope travels as an argument for exactly this call,
// never as shared state, so concurrent or subsequent checks against
// other tenants are unaffected.
func (c *Checker) HasTenantRole(ctx context.Context, userID uuid.UUID, role string, tenantID uuid.UUID) (bool, error) {
	return c.grants.Has(ctx, userID, role, grants.ForTenant(tenantID))
}

// IsPlatformUser reports whether the user holds at least one global-scope
// role grant.
func (c *Checker) IsPlatformUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	roles, err := c.grants.ListGlobal(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(roles) > 0, nil
}

// GlobalRoles returns all global-scope role names held by the user.
func (c *Checker) GlobalRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return c.grants.ListGlobal(ctx, userID)
}

// CanAccessTenant reports whether the user may operate inside the tenant:
// owns it, is a member, or holds the global super role.
func (c *Checker) CanAccessTenant(ctx context.Context, userID uuid.UUID, t *tenant.Tenant) (bool, error) {
	if t == nil {
		return false, nil
	}
	if t.IsOwnedBy(userID) {
		return true, nil
	}
	if member, err := c.tenants.IsMember(ctx, t.ID, userID); err != nil {
		return false, err
	} else if member {
		return true, nil
	}
	return c.grants.Has(ctx, userID, c.superRole, grants.Global)
}

// AccessibleTenants returns the tenants the user owns or is a member of,
// deduplicated and ordered by creation time. Super-role users may access
// any tenant by ID through CanAccessTenant, but the list stays personal.
func (c *Checker) AccessibleTenants(ctx context.Context, userID uuid.UUID) ([]*tenant.Tenant, error) {
	owned, err := c.tenants.TenantsOwnedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	joined, err := c.tenants.TenantsWithMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(owned)+len(joined))
	result := make([]*tenant.Tenant, 0, len(owned)+len(joined))
	for _, t := range append(append(make([]*tenant.Tenant, 0, len(owned)+len(joined)), owned...), joined...) {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		result = append(result, t)
	}
	slices.SortFunc(result, func(a, b *tenant.Tenant) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return result, nil
}

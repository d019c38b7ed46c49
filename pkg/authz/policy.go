package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Policies are pure (actor, subject) -> allow/deny decisions. They read
// through the checker and never mutate anything, so they are callable
// from tests and background jobs without a live request.

// CanViewTenant allows members and holders of the global super role.
func (c *Checker) CanViewTenant(ctx context.Context, userID uuid.UUID, t *tenant.Tenant) (bool, error) {
	if t == nil {
		return false, nil
	}
	if member, err := c.tenants.IsMember(ctx, t.ID, userID); err != nil {
		return false, err
	} else if member {
		return true, nil
	}
	return c.grants.Has(ctx, userID, c.superRole, grants.Global)
}

// CanUpdateTenant allows the owner, holders of a tenant-scoped admin
// role, and holders of the global super role.
func (c *Checker) CanUpdateTenant(ctx context.Context, userID uuid.UUID, t *tenant.Tenant) (bool, error) {
	if t == nil {
		return false, nil
	}
	if t.IsOwnedBy(userID) {
		return true, nil
	}
	if admin, err := c.grants.Has(ctx, userID, grants.RoleAdmin, grants.ForTenant(t.ID)); err != nil {
		return false, err
	} else if admin {
		return true, nil
	}
	return c.grants.Has(ctx, userID, c.superRole, grants.Global)
}

// CanDeleteTenant allows the owner and holders of the global super role.
func (c *Checker) CanDeleteTenant(ctx context.Context, userID uuid.UUID, t *tenant.Tenant) (bool, error) {
	if t == nil {
		return false, nil
	}
	if t.IsOwnedBy(userID) {
		return true, nil
	}
	return c.grants.Has(ctx, userID, c.superRole, grants.Global)
}

// CanViewPlatformDashboard allows holders of any configured global
// dashboard role.
func (c *Checker) CanViewPlatformDashboard(ctx context.Context, userID uuid.UUID) (bool, error) {
	for _, role := range c.dashboardRoles {
		ok, err := c.grants.Has(ctx, userID, role, grants.Global)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

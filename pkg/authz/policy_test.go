package authz_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/pkg/authz"
	"github.com/tenantkit/tenantkit/pkg/grants"
)

func TestCanViewTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	owner := uuid.New()
	member := uuid.New()
	stranger := uuid.New()
	super := uuid.New()
	tn := f.createTenant(t, owner, "acme")

	require.NoError(t, f.tenants.AttachMember(ctx, tn.ID, member))
	require.NoError(t, f.grants.Grant(ctx, super, grants.RoleSuperAdmin, grants.Global))

	for name, tc := range map[string]struct {
		userID uuid.UUID
		want   bool
	}{
		"owner":       {owner, true},
		"member":      {member, true},
		"stranger":    {stranger, false},
		"super admin": {super, true},
	} {
		t.Run(name, func(t *testing.T) {
			ok, err := f.checker.CanViewTenant(ctx, tc.userID, tn)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("nil tenant", func(t *testing.T) {
		ok, err := f.checker.CanViewTenant(ctx, owner, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCanUpdateTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	owner := uuid.New()
	admin := uuid.New()
	member := uuid.New()
	tn := f.createTenant(t, owner, "acme")

	require.NoError(t, f.tenants.AttachMember(ctx, tn.ID, admin))
	require.NoError(t, f.grants.Grant(ctx, admin, grants.RoleAdmin, grants.ForTenant(tn.ID)))
	require.NoError(t, f.tenants.AttachMember(ctx, tn.ID, member))
	require.NoError(t, f.grants.Grant(ctx, member, grants.RoleMember, grants.ForTenant(tn.ID)))

	for name, tc := range map[string]struct {
		userID uuid.UUID
		want   bool
	}{
		"owner":        {owner, true},
		"tenant admin": {admin, true},
		"plain member": {member, false},
	} {
		t.Run(name, func(t *testing.T) {
			ok, err := f.checker.CanUpdateTenant(ctx, tc.userID, tn)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("admin role from another tenant does not count", func(t *testing.T) {
		other := f.createTenant(t, uuid.New(), "beta")
		ok, err := f.checker.CanUpdateTenant(ctx, admin, other)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCanDeleteTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t)
	owner := uuid.New()
	admin := uuid.New()
	super := uuid.New()
	tn := f.createTenant(t, owner, "acme")

	require.NoError(t, f.tenants.AttachMember(ctx, tn.ID, admin))
	require.NoError(t, f.grants.Grant(ctx, admin, grants.RoleAdmin, grants.ForTenant(tn.ID)))
	require.NoError(t, f.grants.Grant(ctx, super, grants.RoleSuperAdmin, grants.Global))

	for name, tc := range map[string]struct {
		userID uuid.UUID
		want   bool
	}{
		"owner":                 {owner, true},
		"tenant admin denied":   {admin, false},
		"global super admin":    {super, true},
		"unrelated user denied": {uuid.New(), false},
	} {
		t.Run(name, func(t *testing.T) {
			ok, err := f.checker.CanDeleteTenant(ctx, tc.userID, tn)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestCanViewPlatformDashboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("default roles", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		manager := uuid.New()
		tenantAdmin := uuid.New()
		tn := f.createTenant(t, uuid.New(), "acme")

		require.NoError(t, f.grants.Grant(ctx, manager, grants.RoleManager, grants.Global))
		require.NoError(t, f.grants.Grant(ctx, tenantAdmin, grants.RoleAdmin, grants.ForTenant(tn.ID)))

		ok, err := f.checker.CanViewPlatformDashboard(ctx, manager)
		require.NoError(t, err)
		assert.True(t, ok)

		// Tenant-scoped roles never open the platform dashboard.
		ok, err = f.checker.CanViewPlatformDashboard(ctx, tenantAdmin)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("custom role list", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, authz.WithDashboardRoles("support"))
		userID := uuid.New()

		require.NoError(t, f.grants.Grant(ctx, userID, grants.RoleSuperAdmin, grants.Global))
		ok, err := f.checker.CanViewPlatformDashboard(ctx, userID)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, f.grants.Grant(ctx, userID, "support", grants.Global))
		ok, err = f.checker.CanViewPlatformDashboard(ctx, userID)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

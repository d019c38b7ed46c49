package action_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/pkg/action"
	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
	"github.com/tenantkit/tenantkit/pkg/tenantctx"
)

type serviceFixture struct {
	tenants  *tenant.MemoryStore
	grants   *grants.MemoryStore
	storage  action.Storage
	resolver *tenantctx.Resolver
	service  *action.Service
}

func newServiceFixture(t *testing.T, opts ...action.ServiceOption) *serviceFixture {
	t.Helper()

	tenants := tenant.NewMemoryStore()
	grantStore := grants.NewMemoryStore()
	storage := action.NewMemoryStorage(tenants, grantStore)
	resolver := tenantctx.NewResolver(tenants)

	return &serviceFixture{
		tenants:  tenants,
		grants:   grantStore,
		storage:  storage,
		resolver: resolver,
		service:  action.NewService(storage, resolver, opts...),
	}
}

func (f *serviceFixture) createUser(t *testing.T, email string) *tenant.User {
	t.Helper()
	u := &tenant.User{Email: email}
	require.NoError(t, f.tenants.CreateUser(context.Background(), u))
	return u
}

func TestCreateTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates tenant with owner membership and grant", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")

		tn, err := f.service.CreateTenant(ctx, owner.ID, "  Acme  ")
		require.NoError(t, err)
		assert.Equal(t, "Acme", tn.Name)
		assert.Equal(t, owner.ID, tn.OwnerID)

		member, err := f.tenants.IsMember(ctx, tn.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, member)

		ok, err := f.grants.Has(ctx, owner.ID, grants.RoleOwner, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		_, err := f.service.CreateTenant(ctx, uuid.New(), "   ")
		assert.ErrorIs(t, err, action.ErrEmptyName)
	})
}

func TestUpdateTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("renames", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		updated, err := f.service.UpdateTenant(ctx, tn.ID, "Acme Inc")
		require.NoError(t, err)
		assert.Equal(t, "Acme Inc", updated.Name)

		got, err := f.tenants.GetTenant(ctx, tn.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Inc", got.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		_, err := f.service.UpdateTenant(ctx, uuid.New(), "")
		assert.ErrorIs(t, err, action.ErrEmptyName)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		_, err := f.service.UpdateTenant(ctx, uuid.New(), "name")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestDeleteTenant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes tenant memberships and grants", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		member := f.createUser(t, "member@example.com")

		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)
		require.NoError(t, f.service.InviteMember(ctx, tn.ID, member.ID, grants.RoleMember))

		require.NoError(t, f.service.DeleteTenant(ctx, tn.ID))

		_, err = f.tenants.GetTenant(ctx, tn.ID)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)

		ids, err := f.tenants.MemberIDs(ctx, tn.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)

		for _, userID := range []uuid.UUID{owner.ID, member.ID} {
			roles, err := f.grants.ListForUser(ctx, userID, grants.ForTenant(tn.ID))
			require.NoError(t, err)
			assert.Empty(t, roles)
		}
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		err := f.service.DeleteTenant(ctx, uuid.New())
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestInviteMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attaches member with role", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		invitee := f.createUser(t, "new@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		require.NoError(t, f.service.InviteMember(ctx, tn.ID, invitee.ID, grants.RoleManager))

		member, err := f.tenants.IsMember(ctx, tn.ID, invitee.ID)
		require.NoError(t, err)
		assert.True(t, member)

		ok, err := f.grants.Has(ctx, invitee.ID, grants.RoleManager, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("owner role is reserved", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		err := f.service.InviteMember(ctx, uuid.New(), uuid.New(), grants.RoleOwner)
		assert.ErrorIs(t, err, action.ErrOwnerRoleReserved)
	})

	t.Run("unknown role is rejected before any write", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		invitee := f.createUser(t, "new@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		err = f.service.InviteMember(ctx, tn.ID, invitee.ID, "made-up")
		assert.ErrorIs(t, err, grants.ErrUnknownRole)

		member, err := f.tenants.IsMember(ctx, tn.ID, invitee.ID)
		require.NoError(t, err)
		assert.False(t, member)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		err = f.service.InviteMember(ctx, tn.ID, uuid.New(), grants.RoleMember)
		assert.ErrorIs(t, err, tenant.ErrUserNotFound)
	})

	t.Run("re-invite keeps membership", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		invitee := f.createUser(t, "new@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		require.NoError(t, f.service.InviteMember(ctx, tn.ID, invitee.ID, grants.RoleMember))
		require.NoError(t, f.service.InviteMember(ctx, tn.ID, invitee.ID, grants.RoleMember))

		ids, err := f.tenants.MemberIDs(ctx, tn.ID)
		require.NoError(t, err)
		assert.Len(t, ids, 2) // owner + invitee
	})

	t.Run("re-invite with a different role replaces the old one", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		invitee := f.createUser(t, "new@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		require.NoError(t, f.service.InviteMember(ctx, tn.ID, invitee.ID, grants.RoleManager))
		require.NoError(t, f.service.InviteMember(ctx, tn.ID, invitee.ID, grants.RoleAdmin))

		roles, err := f.grants.ListForUser(ctx, invitee.ID, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, grants.RoleAdmin, roles[0])
	})

	t.Run("the owner cannot be invited into another role", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		err = f.service.InviteMember(ctx, tn.ID, owner.ID, grants.RoleAdmin)
		assert.ErrorIs(t, err, action.ErrCannotReassignOwner)

		ok, err := f.grants.Has(ctx, owner.ID, grants.RoleOwner, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRemoveMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("detaches member and revokes grants", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		member := f.createUser(t, "member@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)
		require.NoError(t, f.service.InviteMember(ctx, tn.ID, member.ID, grants.RoleAdmin))

		require.NoError(t, f.service.RemoveMember(ctx, tn.ID, member.ID))

		isMember, err := f.tenants.IsMember(ctx, tn.ID, member.ID)
		require.NoError(t, err)
		assert.False(t, isMember)

		roles, err := f.grants.ListForUser(ctx, member.ID, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)

		err = f.service.RemoveMember(ctx, tn.ID, owner.ID)
		assert.ErrorIs(t, err, action.ErrCannotRemoveOwner)

		member, err := f.tenants.IsMember(ctx, tn.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, member)
	})
}

func TestAssignRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*serviceFixture, *tenant.Tenant, *tenant.User) {
		t.Helper()
		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		member := f.createUser(t, "member@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)
		require.NoError(t, f.service.InviteMember(ctx, tn.ID, member.ID, grants.RoleMember))
		return f, tn, member
	}

	t.Run("replaces the previous role", func(t *testing.T) {
		t.Parallel()

		f, tn, member := setup(t)

		require.NoError(t, f.service.AssignRole(ctx, tn.ID, member.ID, grants.RoleAdmin))

		roles, err := f.grants.ListForUser(ctx, member.ID, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.Equal(t, []string{grants.RoleAdmin}, roles)
	})

	t.Run("reassigning the same role is a no-op", func(t *testing.T) {
		t.Parallel()

		f, tn, member := setup(t)

		require.NoError(t, f.service.AssignRole(ctx, tn.ID, member.ID, grants.RoleMember))
		require.NoError(t, f.service.AssignRole(ctx, tn.ID, member.ID, grants.RoleMember))

		roles, err := f.grants.ListForUser(ctx, member.ID, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.Equal(t, []string{grants.RoleMember}, roles)
	})

	t.Run("owner role is reserved", func(t *testing.T) {
		t.Parallel()

		f, tn, member := setup(t)
		err := f.service.AssignRole(ctx, tn.ID, member.ID, grants.RoleOwner)
		assert.ErrorIs(t, err, action.ErrOwnerRoleReserved)
	})

	t.Run("owner cannot be reassigned", func(t *testing.T) {
		t.Parallel()

		f, tn, _ := setup(t)
		err := f.service.AssignRole(ctx, tn.ID, tn.OwnerID, grants.RoleAdmin)
		assert.ErrorIs(t, err, action.ErrCannotReassignOwner)

		ok, err := f.grants.Has(ctx, tn.OwnerID, grants.RoleOwner, grants.ForTenant(tn.ID))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		t.Parallel()

		f, tn, _ := setup(t)
		stranger := f.createUser(t, "stranger@example.com")
		err := f.service.AssignRole(ctx, tn.ID, stranger.ID, grants.RoleAdmin)
		assert.ErrorIs(t, err, action.ErrNotMember)
	})

	t.Run("unassignable role is rejected", func(t *testing.T) {
		t.Parallel()

		catalog, err := grants.LoadCatalog(strings.NewReader(`
roles:
  owner:
    assignable: false
  frozen:
    assignable: false
  member:
    assignable: true
`))
		require.NoError(t, err)

		f := newServiceFixture(t, action.WithCatalog(catalog))
		owner := f.createUser(t, "owner@example.com")
		member := f.createUser(t, "member@example.com")
		tn, err := f.service.CreateTenant(ctx, owner.ID, "Acme")
		require.NoError(t, err)
		require.NoError(t, f.service.InviteMember(ctx, tn.ID, member.ID, "member"))

		err = f.service.AssignRole(ctx, tn.ID, member.ID, "frozen")
		assert.ErrorIs(t, err, action.ErrRoleNotAssignable)
	})
}

func TestSwitchContext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newAuthedSession := func(userID uuid.UUID) *session.Session {
		return session.New(uuid.NewString(), &userID, time.Hour)
	}

	t.Run("member switches selection", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		first, err := f.service.CreateTenant(ctx, owner.ID, "First")
		require.NoError(t, err)
		second, err := f.service.CreateTenant(ctx, owner.ID, "Second")
		require.NoError(t, err)

		sess := newAuthedSession(owner.ID)
		f.resolver.SetCurrentTenant(ctx, sess, first)

		require.NoError(t, f.service.SwitchContext(ctx, sess, second.ID))

		id, ok := f.resolver.CurrentTenantID(sess)
		require.True(t, ok)
		assert.Equal(t, second.ID, id)
	})

	t.Run("non-member is rejected and selection kept", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		owner := f.createUser(t, "owner@example.com")
		outsider := f.createUser(t, "outsider@example.com")
		own, err := f.service.CreateTenant(ctx, outsider.ID, "Own")
		require.NoError(t, err)
		foreign, err := f.service.CreateTenant(ctx, owner.ID, "Foreign")
		require.NoError(t, err)

		sess := newAuthedSession(outsider.ID)
		f.resolver.SetCurrentTenant(ctx, sess, own)

		err = f.service.SwitchContext(ctx, sess, foreign.ID)
		assert.ErrorIs(t, err, action.ErrNotMember)

		id, ok := f.resolver.CurrentTenantID(sess)
		require.True(t, ok)
		assert.Equal(t, own.ID, id)
	})

	t.Run("anonymous session is rejected", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t)
		err := f.service.SwitchContext(ctx, nil, uuid.New())
		assert.ErrorIs(t, err, action.ErrNotMember)
	})
}

// failingGrants wraps the grant store and fails the first Grant call,
// simulating a mid-transaction fault.
type failingGrants struct {
	grants.Store
	failed bool
}

var errInjected = errors.New("injected failure")

func (f *failingGrants) Grant(ctx context.Context, userID uuid.UUID, role string, scope grants.Scope) error {
	if !f.failed {
		f.failed = true
		return errInjected
	}
	return f.Store.Grant(ctx, userID, role, scope)
}

// faultStorage swaps the grant store view while keeping RunInTx rollback
// semantics of the wrapped storage.
type faultStorage struct {
	action.Storage
	grants grants.Store
}

func (f *faultStorage) Grants() grants.Store { return f.grants }

func (f *faultStorage) RunInTx(ctx context.Context, fn func(ctx context.Context, s action.Storage) error) error {
	return f.Storage.RunInTx(ctx, func(ctx context.Context, s action.Storage) error {
		return fn(ctx, &faultStorage{Storage: s, grants: f.grants})
	})
}

func TestCreateTenantAtomicity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tenants := tenant.NewMemoryStore()
	grantStore := grants.NewMemoryStore()
	base := action.NewMemoryStorage(tenants, grantStore)
	storage := &faultStorage{Storage: base, grants: &failingGrants{Store: grantStore}}
	resolver := tenantctx.NewResolver(tenants)
	service := action.NewService(storage, resolver)

	owner := &tenant.User{Email: "owner@example.com"}
	require.NoError(t, tenants.CreateUser(ctx, owner))

	_, err := service.CreateTenant(ctx, owner.ID, "Acme")
	require.ErrorIs(t, err, errInjected)

	// The failed grant rolled back the tenant row and the membership.
	owned, err := tenants.TenantsOwnedBy(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	// A retry succeeds once the fault clears.
	tn, err := service.CreateTenant(ctx, owner.ID, "Acme")
	require.NoError(t, err)

	member, err := tenants.IsMember(ctx, tn.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, member)
}

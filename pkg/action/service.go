package action

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
	"github.com/tenantkit/tenantkit/pkg/tenantctx"
)

// Service implements the tenant lifecycle and membership operations.
// Every multi-write operation runs inside a single transaction; invariant
// guards run before the transaction starts and fail fast with no side
// effects.
type Service struct {
	storage  Storage
	resolver *tenantctx.Resolver
	catalog  *grants.Catalog
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithCatalog overrides the role catalog used to validate invite and
// assign requests. Defaults to grants.DefaultCatalog.
func WithCatalog(catalog *grants.Catalog) ServiceOption {
	return func(s *Service) {
		s.catalog = catalog
	}
}

// NewService creates the action service.
func NewService(storage Storage, resolver *tenantctx.Resolver, opts ...ServiceOption) *Service {
	s := &Service{
		storage:  storage,
		resolver: resolver,
		catalog:  grants.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTenant creates a workspace owned by the user: the tenant row, the
// owner's membership, and the tenant-scoped owner role grant, atomically.
func (s *Service) CreateTenant(ctx context.Context, ownerID uuid.UUID, name string) (*tenant.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	t := &tenant.Tenant{Name: name, OwnerID: ownerID}
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx Storage) error {
		if err := tx.Tenants().CreateTenant(ctx, t); err != nil {
			return err
		}
		if err := tx.Tenants().AttachMember(ctx, t.ID, ownerID); err != nil {
			return err
		}
		return tx.Grants().Grant(ctx, ownerID, grants.RoleOwner, grants.ForTenant(t.ID))
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTenant renames the tenant. Authorization is the caller's concern
// (authz.CanUpdateTenant).
func (s *Service) UpdateTenant(ctx context.Context, tenantID uuid.UUID, name string) (*tenant.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	t, err := s.storage.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	t.Name = name
	if err := s.storage.Tenants().UpdateTenant(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTenant removes the tenant, all of its membership rows, and every
// tenant-scoped role grant in one transaction. Sessions still pointing at
// the tenant resolve to nil on their next request and get reassigned by
// the assignment middleware.
func (s *Service) DeleteTenant(ctx context.Context, tenantID uuid.UUID) error {
	if _, err := s.storage.Tenants().GetTenant(ctx, tenantID); err != nil {
		return err
	}

	return s.storage.RunInTx(ctx, func(ctx context.Context, tx Storage) error {
		if err := tx.Tenants().DetachAllMembers(ctx, tenantID); err != nil {
			return err
		}
		if err := tx.Grants().RevokeScope(ctx, grants.ForTenant(tenantID)); err != nil {
			return err
		}
		return tx.Tenants().DeleteTenant(ctx, tenantID)
	})
}

// InviteMember attaches the user as a member (no-op when already a
// member) and grants the named role, replacing any role the user already
// holds in the tenant. The owner role cannot be handed out this way, and
// the owner cannot be invited into a different role.
func (s *Service) InviteMember(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	if role == grants.RoleOwner {
		return ErrOwnerRoleReserved
	}
	if err := s.catalog.Verify(role); err != nil {
		return err
	}
	if _, err := s.storage.Users().GetUser(ctx, userID); err != nil {
		return err
	}
	t, err := s.storage.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.IsOwnedBy(userID) {
		return ErrCannotReassignOwner
	}

	return s.storage.RunInTx(ctx, func(ctx context.Context, tx Storage) error {
		if err := tx.Tenants().AttachMember(ctx, tenantID, userID); err != nil {
			return err
		}
		if err := tx.Grants().RevokeAllForUser(ctx, userID, grants.ForTenant(tenantID)); err != nil {
			return err
		}
		return tx.Grants().Grant(ctx, userID, role, grants.ForTenant(tenantID))
	})
}

// RemoveMember detaches the user and revokes all their tenant-scoped
// grants. The owner can never be removed from their own tenant.
func (s *Service) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	t, err := s.storage.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.IsOwnedBy(userID) {
		return ErrCannotRemoveOwner
	}

	return s.storage.RunInTx(ctx, func(ctx context.Context, tx Storage) error {
		if err := tx.Grants().RevokeAllForUser(ctx, userID, grants.ForTenant(tenantID)); err != nil {
			return err
		}
		return tx.Tenants().DetachMember(ctx, tenantID, userID)
	})
}

// AssignRole replaces the member's tenant-scoped role. Prior non-owner
// grants for the (user, tenant) pair are revoked first, so a member holds
// at most one non-owner role per tenant. Rejects the owner role and any
// reassignment targeting the owner.
func (s *Service) AssignRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	if role == grants.RoleOwner {
		return ErrOwnerRoleReserved
	}
	if err := s.catalog.Verify(role); err != nil {
		return err
	}
	if !s.catalog.Assignable(role) {
		return ErrRoleNotAssignable
	}

	t, err := s.storage.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.IsOwnedBy(userID) {
		return ErrCannotReassignOwner
	}

	member, err := s.storage.Tenants().IsMember(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}

	return s.storage.RunInTx(ctx, func(ctx context.Context, tx Storage) error {
		if err := tx.Grants().RevokeAllForUser(ctx, userID, grants.ForTenant(tenantID)); err != nil {
			return err
		}
		return tx.Grants().Grant(ctx, userID, role, grants.ForTenant(tenantID))
	})
}

// SwitchContext selects a different tenant for the session's user. The
// actor must be a member of the target tenant; on rejection the previous
// selection is left untouched.
func (s *Service) SwitchContext(ctx context.Context, sess *session.Session, tenantID uuid.UUID) error {
	if sess == nil || !sess.IsAuthenticated() {
		return ErrNotMember
	}
	actorID := *sess.UserID

	member, err := s.storage.Tenants().IsMember(ctx, tenantID, actorID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}

	t, err := s.storage.Tenants().GetTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	s.resolver.SetCurrentTenant(ctx, sess, t)
	return nil
}

package pgstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/pg"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// TenantStore implements tenant.Store against PostgreSQL.
type TenantStore struct {
	db DBTX
}

// GetTenant retrieves a tenant by ID.
func (s *TenantStore) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at, updated_at FROM tenants WHERE id = $1`, id)

	var t tenant.Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CreateTenant inserts a tenant row. Assigns ID and timestamps when unset.
func (s *TenantStore) CreateTenant(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	_, err := s.db.Exec(ctx,
		`INSERT INTO tenants (id, name, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	if pg.IsDuplicateKeyError(err) {
		return tenant.ErrTenantExists
	}
	return err
}

// UpdateTenant updates the mutable tenant columns.
func (s *TenantStore) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	t.UpdatedAt = time.Now()

	tag, err := s.db.Exec(ctx,
		`UPDATE tenants SET name = $2, updated_at = $3 WHERE id = $1`,
		t.ID, t.Name, t.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// DeleteTenant removes the tenant row.
func (s *TenantStore) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

// AttachMember adds a membership row. Attaching an existing member is a no-op.
func (s *TenantStore) AttachMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tenant_members (tenant_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		tenantID, userID)
	if pg.IsForeignKeyViolationError(err) {
		return tenant.ErrTenantNotFound
	}
	return err
}

// DetachMember removes a membership row. Detaching a non-member is a no-op.
func (s *TenantStore) DetachMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM tenant_members WHERE tenant_id = $1 AND user_id = $2`, tenantID, userID)
	return err
}

// DetachAllMembers removes every membership row for the tenant.
func (s *TenantStore) DetachAllMembers(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM tenant_members WHERE tenant_id = $1`, tenantID)
	return err
}

// IsMember reports whether a membership row exists.
func (s *TenantStore) IsMember(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	row := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenant_members WHERE tenant_id = $1 AND user_id = $2)`,
		tenantID, userID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MemberIDs returns the user IDs of all members of the tenant.
func (s *TenantStore) MemberIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT user_id FROM tenant_members WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TenantsOwnedBy returns tenants owned by the user, oldest first.
func (s *TenantStore) TenantsOwnedBy(ctx context.Context, userID uuid.UUID) ([]*tenant.Tenant, error) {
	return s.queryTenants(ctx,
		`SELECT id, name, owner_id, created_at, updated_at
		 FROM tenants WHERE owner_id = $1 ORDER BY created_at`, userID)
}

// TenantsWithMember returns tenants the user is a member of, oldest first.
func (s *TenantStore) TenantsWithMember(ctx context.Context, userID uuid.UUID) ([]*tenant.Tenant, error) {
	return s.queryTenants(ctx,
		`SELECT t.id, t.name, t.owner_id, t.created_at, t.updated_at
		 FROM tenants t
		 JOIN tenant_members m ON m.tenant_id = t.id
		 WHERE m.user_id = $1 ORDER BY t.created_at`, userID)
}

func (s *TenantStore) queryTenants(ctx context.Context, query string, args ...any) ([]*tenant.Tenant, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, &t)
	}
	return tenants, rows.Err()
}

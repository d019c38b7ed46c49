package pgstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/grants"
)

// GrantStore implements grants.Store against PostgreSQL.
type GrantStore struct {
	db DBTX
}

// Grant records a capability triple. Idempotent via ON CONFLICT.
func (s *GrantStore) Grant(ctx context.Context, userID uuid.UUID, role string, scope grants.Scope) error {
	if role == "" {
		return grants.ErrEmptyRole
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO role_grants (user_id, role, scope) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		userID, role, scope.String())
	return err
}

// Revoke removes a capability triple. Revoking a missing triple is a no-op.
func (s *GrantStore) Revoke(ctx context.Context, userID uuid.UUID, role string, scope grants.Scope) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM role_grants WHERE user_id = $1 AND role = $2 AND scope = $3`,
		userID, role, scope.String())
	return err
}

// Has reports whether the exact triple exists.
func (s *GrantStore) Has(ctx context.Context, userID uuid.UUID, role string, scope grants.Scope) (bool, error) {
	row := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM role_grants WHERE user_id = $1 AND role = $2 AND scope = $3)`,
		userID, role, scope.String())

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListGlobal returns all global-scope role names held by the user.
func (s *GrantStore) ListGlobal(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.ListForUser(ctx, userID, grants.Global)
}

// ListForUser returns all role names the user holds in the scope, sorted.
func (s *GrantStore) ListForUser(ctx context.Context, userID uuid.UUID, scope grants.Scope) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT role FROM role_grants WHERE user_id = $1 AND scope = $2 ORDER BY role`,
		userID, scope.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// RevokeAllForUser removes every grant the user holds in the scope.
func (s *GrantStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID, scope grants.Scope) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM role_grants WHERE user_id = $1 AND scope = $2`, userID, scope.String())
	return err
}

// RevokeScope removes every grant in the scope, for all users.
func (s *GrantStore) RevokeScope(ctx context.Context, scope grants.Scope) error {
	_, err := s.db.Exec(ctx, `DELETE FROM role_grants WHERE scope = $1`, scope.String())
	return err
}

package pgstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/pg"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// UserStore implements tenant.UserStore against PostgreSQL.
type UserStore struct {
	db DBTX
}

// GetUser retrieves a user by ID.
func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*tenant.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, email, name, created_at FROM users WHERE id = $1`, id)

	var u tenant.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user row. Assigns ID and creation time when unset.
func (s *UserStore) CreateUser(ctx context.Context, u *tenant.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, email, name, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.Name, u.CreatedAt)
	if pg.IsDuplicateKeyError(err) {
		return tenant.ErrUserExists
	}
	return err
}

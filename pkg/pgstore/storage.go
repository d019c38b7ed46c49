package pgstore

import (
	"context"
	"embed"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tenantkit/tenantkit/pkg/action"
	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/pg"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so the
// same store code runs inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage is the PostgreSQL-backed action.Storage. Outside a transaction
// its stores query the pool directly; inside RunInTx they share one
// pgx.Tx.
type Storage struct {
	pool *pgxpool.Pool
	db   DBTX
}

// New creates a Storage over the connection pool.
func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool, db: pool}
}

// Tenants returns the tenant/membership store view.
func (s *Storage) Tenants() tenant.Store {
	return &TenantStore{db: s.db}
}

// Users returns the user store view.
func (s *Storage) Users() tenant.UserStore {
	return &UserStore{db: s.db}
}

// Grants returns the role-grant store view.
func (s *Storage) Grants() grants.Store {
	return &GrantStore{db: s.db}
}

// RunInTx executes fn inside a single transaction. The Storage passed to
// fn issues every query through that transaction; any error rolls the
// whole transaction back.
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context, tx action.Storage) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &Storage{pool: s.pool, db: tx})
	})
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate(ctx context.Context, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, s.pool, migrationsFS, "migrations", cfg, log)
}

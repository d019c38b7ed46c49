// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// with retrying Connect, goose-driven schema migrations from an embedded
// filesystem, a health probe, and error helpers for the SQLSTATE checks
// the storage code cares about.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, slog.Default()); err != nil { ... }
package pg

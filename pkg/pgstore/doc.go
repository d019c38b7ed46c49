// Package pgstore is the PostgreSQL persistence layer: tenant, user and
// role-grant stores over pgx/v5, a transactional action.Storage, and the
// embedded goose migrations that create the four tables.
//
//	pool, err := pg.Connect(ctx, cfg)
//	storage := pgstore.New(pool)
//	if err := storage.Migrate(ctx, cfg, slog.Default()); err != nil { ... }
//
// Store methods run against the pool directly; inside Storage.RunInTx
// every store view shares one transaction, which is how the action
// package gets its all-or-nothing semantics.
package pgstore

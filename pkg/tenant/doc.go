// Package tenant defines the core multi-tenancy entities and their
// persistence contracts: tenants (isolated workspaces with exactly one
// owner), users, and the membership relation between them.
//
// The package deliberately contains no business rules. Invariants such as
// "the owner is always a member" or "the owner's membership can never be
// removed" are enforced by the action package, which drives Store
// implementations inside a single transaction.
//
// # Stores
//
// Two implementations of the contracts ship with the kit:
//
//   - MemoryStore: mutex-guarded maps with copy-out semantics, used in
//     tests and local development
//   - pgstore: PostgreSQL-backed implementation in the pgstore package
//
// # Context propagation
//
// The resolved current tenant travels through the request via context:
//
//	ctx = tenant.WithTenant(ctx, t)
//	t, ok := tenant.FromContext(ctx)
//
// Handlers that run behind the context middleware can use MustFromContext.
// LoggerExtractor plugs the tenant ID into slog-based request logging.
package tenant

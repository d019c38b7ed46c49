// Package tenantkit provides session-based multi-tenancy for Go web
// applications: resolving which tenant a signed-in user is acting in,
// keeping that selection valid, and authorizing tenant-scoped work.
//
// The package is organised around a small set of building blocks found
// under pkg/ and composed here by Kit:
//
//   - pkg/tenant: the tenant and user model plus storage contracts
//   - pkg/grants: role grants keyed by user, role, and scope
//   - pkg/session: the session model, flash notices, and stores
//   - pkg/authz: membership, ownership, and role checks and the policies
//   - pkg/tenantctx: context resolution and the two HTTP middlewares
//   - pkg/action: the transactional business actions
//   - pkg/pgstore: the PostgreSQL storage with embedded migrations
//
// Basic Usage:
//
//	storage := pgstore.New(pool)
//	sessions := session.NewRedisStore(client, "sess")
//
//	kit := tenantkit.New(storage, sessions,
//	    tenantkit.WithLogger(log),
//	)
//
//	r := chi.NewRouter()
//	r.Use(kit.SessionMiddleware("app_session"))
//	r.Use(kit.AssignMiddleware())
//	r.Route("/workspaces/{tenantID}", func(r chi.Router) {
//	    r.Use(kit.MatchMiddleware(""))
//	    r.Get("/", showWorkspace)
//	})
//
// Handlers behind the middlewares read the active tenant from the request
// context with tenant.FromContext and perform mutations through
// kit.Actions, which validates invariants and runs each action atomically.
//
// Middleware order matters: the assignment step installs per-request
// state the match step depends on, and MatchMiddleware panics when
// mounted without AssignMiddleware earlier in the chain.
//
// For tests and small deployments, action.NewMemoryStorage and
// session.NewMemoryStore provide in-memory implementations of the same
// contracts.
package tenantkit

// Package tenantctx resolves and guards the current tenant for every
// request. It is the glue between the session (which remembers the
// selected tenant across requests), the tenant store (which knows whether
// that selection is still valid), and the authorization checker.
//
// # Pipeline
//
// Two steps run in fixed order on every authenticated request:
//
//  1. Assignment (Assigner): loads the stored selection, silently heals a
//     revoked or dangling one, auto-assigns the first owned (then first
//     joined) tenant, and sends users with no eligible tenant to the
//     creation page. Platform users (holders of any global role) are
//     exempt from the tenant requirement.
//  2. Match (Matcher): on routes parameterized by a tenant ID, ensures
//     the route tenant and the session tenant agree. An empty context
//     adopts an accessible route tenant; a conflicting context refuses
//     and redirects with a warning.
//
// The order is an invariant, not a preference: Match panics when the
// assignment step has not run.
//
// # Decisions, not side effects
//
// Both steps return a Decision value: pass through, or redirect with an
// optional flash notice. The HTTP middleware adapters translate decisions
// into responses; the decision cores are plain functions usable without
// an HTTP stack.
//
// # Request-scoped caching
//
// CurrentTenant resolves the tenant row at most once per request through
// a cache carried in the request context. The cache never outlives the
// request and never leaks between requests.
package tenantctx

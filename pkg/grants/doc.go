// Package grants implements the capability store behind all role checks:
// a set of (user, role, scope) triples, where scope is either the reserved
// "global" sentinel or a specific tenant ID.
//
// A user holding at least one global-scope grant is a platform user;
// everyone else is a tenant user. Tenant-scoped checks always pass the
// scope explicitly, so a check against tenant A can never bleed into a
// later check against tenant B within the same request.
//
// The Catalog type pins down which role names a deployment recognises.
// It can be loaded from YAML or taken from DefaultCatalog:
//
//	catalog, err := grants.LoadCatalogFile("roles.yaml")
//
// Store implementations: MemoryStore here for tests, a PostgreSQL-backed
// store in the pgstore package.
package grants

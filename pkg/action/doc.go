// Package action implements the transactional tenant lifecycle: create,
// rename and delete workspaces, invite and remove members, assign roles,
// and switch the session's tenant context.
//
// Invariant guards (never remove the owner, never hand out the owner
// role, never reassign the owner's role, members only) run before any
// write and reject with invalid-argument sentinels. Everything that
// touches more than one row runs inside Storage.RunInTx: all writes
// commit or none do.
//
// Storage has two implementations: NewMemoryStorage for tests, and the
// pgstore package for PostgreSQL.
package action

// Package authz combines membership rows and role grants into the access
// decisions the rest of the kit relies on.
//
// Checker exposes two layers:
//
//   - predicates (IsMemberOf, IsOwnerOf, HasGlobalRole, HasTenantRole,
//     IsPlatformUser, GlobalRoles): raw facts about a user
//   - policies (CanViewTenant, CanUpdateTenant, CanDeleteTenant,
//     CanViewPlatformDashboard): allow/deny decisions per protected action
//
// Both layers are side-effect free and deterministic for a given store
// state. Tenant-scoped role checks pass the scope explicitly per call;
// there is no ambient "current team" variable to override and restore,
// which makes scope leakage between checks structurally impossible.
package authz

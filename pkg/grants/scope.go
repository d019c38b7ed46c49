package grants

import "github.com/google/uuid"

// Scope is the opaque token the permission engine uses to partition role
// evaluation. It is either the reserved Global sentinel or a tenant ID in
// string form.
type Scope string

// Global is the sentinel scope for platform-wide role grants.
const Global Scope = "global"

// ForTenant returns the scope for a specific tenant.
func ForTenant(id uuid.UUID) Scope {
	return Scope(id.String())
}

// IsGlobal reports whether the scope is the global sentinel.
func (s Scope) IsGlobal() bool {
	return s == Global
}

// TenantID parses the scope back into a tenant ID.
// Returns false for the global sentinel or a malformed scope.
func (s Scope) TenantID() (uuid.UUID, bool) {
	if s.IsGlobal() {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(string(s))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// String implements fmt.Stringer.
func (s Scope) String() string {
	return string(s)
}

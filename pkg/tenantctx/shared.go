package tenantctx

import (
	"context"

	"github.com/tenantkit/tenantkit/pkg/authz"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Shared is the read-only snapshot the presentation layer consumes once
// per request: the resolved tenant, the tenants the user may switch to,
// platform flags, and any pending flash notices.
type Shared struct {
	Tenant         *tenant.Tenant   `json:"tenant,omitempty"`
	Tenants        []*tenant.Tenant `json:"tenants"`
	IsPlatformUser bool             `json:"is_platform_user"`
	GlobalRoles    []string         `json:"global_roles,omitempty"`
	Flashes        []session.Flash  `json:"flashes,omitempty"`
}

// Sharer builds Shared snapshots.
type Sharer struct {
	resolver *Resolver
	checker  *authz.Checker
}

// NewSharer creates a snapshot builder.
func NewSharer(resolver *Resolver, checker *authz.Checker) *Sharer {
	return &Sharer{resolver: resolver, checker: checker}
}

// Build assembles the snapshot for the session's user. Flash notices are
// consumed: a second Build within the same session sees none.
func (s *Sharer) Build(ctx context.Context, sess *session.Session) (*Shared, error) {
	shared := &Shared{
		Tenants: []*tenant.Tenant{},
		Flashes: session.PopFlashes(sess),
	}
	if sess == nil || !sess.IsAuthenticated() {
		return shared, nil
	}
	userID := *sess.UserID

	shared.Tenant = s.resolver.CurrentTenant(ctx, sess)

	tenants, err := s.checker.AccessibleTenants(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared.Tenants = tenants

	roles, err := s.checker.GlobalRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared.GlobalRoles = roles
	shared.IsPlatformUser = len(roles) > 0

	return shared, nil
}

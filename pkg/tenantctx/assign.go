package tenantctx

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/authz"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Assigner guarantees that every authenticated, non-platform user has a
// valid tenant context before the request reaches a handler. It runs
// first in the pipeline, ahead of the Matcher.
type Assigner struct {
	resolver *Resolver
	tenants  tenant.Store
	checker  *authz.Checker
	cfg      Config
	log      *slog.Logger
}

// AssignerOption configures the assigner.
type AssignerOption func(*Assigner)

// WithAssignerLogger sets the logger used for self-healing events.
func WithAssignerLogger(log *slog.Logger) AssignerOption {
	return func(a *Assigner) {
		a.log = log
	}
}

// NewAssigner creates the context-assignment step.
func NewAssigner(resolver *Resolver, tenants tenant.Store, checker *authz.Checker, cfg Config, opts ...AssignerOption) *Assigner {
	a := &Assigner{
		resolver: resolver,
		tenants:  tenants,
		checker:  checker,
		cfg:      cfg,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign loads or auto-assigns a tenant context for the session's user.
// reqPath is the originally requested URL, recorded for the post-creation
// redirect when the user has no eligible tenant yet.
//
// Revoked access is self-healing: a stale selection is cleared silently
// and reassignment proceeds as if nothing was stored. The only
// non-continue outcome is the guided redirect to tenant creation.
func (a *Assigner) Assign(ctx context.Context, sess *session.Session, reqPath string) (Decision, error) {
	if sess == nil || !sess.IsAuthenticated() {
		return Pass(), nil
	}
	userID := *sess.UserID

	if id, ok := a.resolver.CurrentTenantID(sess); ok {
		t := a.resolver.CurrentTenant(ctx, sess)
		if t != nil {
			allowed, err := a.checker.CanAccessTenant(ctx, userID, t)
			if err != nil {
				return Pass(), err
			}
			if allowed {
				return Pass(), nil
			}
		}
		// Tenant vanished or access was revoked: clear and reassign.
		a.resolver.SetCurrentTenant(ctx, sess, nil)
		a.log.InfoContext(ctx, "cleared stale tenant context",
			slog.String("user_id", userID.String()),
			slog.String("tenant_id", id.String()))
	}

	assigned, err := a.autoAssign(ctx, sess, userID)
	if err != nil {
		return Pass(), err
	}
	if assigned {
		return Pass(), nil
	}

	platform, err := a.checker.IsPlatformUser(ctx, userID)
	if err != nil {
		return Pass(), err
	}
	if platform {
		return Pass(), nil
	}

	if a.cfg.isExempt(reqPath) {
		return Pass(), nil
	}

	RecordIntendedURL(sess, reqPath)
	return RedirectTo(a.cfg.CreatePath), nil
}

// autoAssign picks the first tenant the user owns, then the first tenant
// the user is a member of.
func (a *Assigner) autoAssign(ctx context.Context, sess *session.Session, userID uuid.UUID) (bool, error) {
	owned, err := a.tenants.TenantsOwnedBy(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(owned) > 0 {
		a.resolver.SetCurrentTenant(ctx, sess, owned[0])
		return true, nil
	}

	joined, err := a.tenants.TenantsWithMember(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(joined) > 0 {
		a.resolver.SetCurrentTenant(ctx, sess, joined[0])
		return true, nil
	}

	return false, nil
}

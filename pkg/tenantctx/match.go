package tenantctx

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/authz"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Notices used by the match step.
const (
	noticeAccessDenied    = "You do not have access to that workspace."
	noticeContextMismatch = "That page belongs to a different workspace."
)

// Matcher validates that a route's explicit tenant parameter agrees with
// the session's selected tenant. It must run after the Assigner.
type Matcher struct {
	resolver *Resolver
	checker  *authz.Checker
	cfg      Config
}

// NewMatcher creates the context-match step.
func NewMatcher(resolver *Resolver, checker *authz.Checker, cfg Config) *Matcher {
	return &Matcher{
		resolver: resolver,
		checker:  checker,
		cfg:      cfg,
	}
}

// Match reconciles the route tenant with the session tenant.
//
// The asymmetry is intentional: an empty context adopts the route's
// tenant when the user may access it, but a non-empty context that
// disagrees with the route refuses and redirects rather than silently
// switching the user's workspace.
func (m *Matcher) Match(ctx context.Context, sess *session.Session, routeTenantID uuid.UUID) (Decision, error) {
	if routeTenantID == uuid.Nil {
		return Pass(), nil
	}

	if sess == nil || !sess.IsAuthenticated() {
		return RedirectWithFlash(m.cfg.DefaultPath, session.FlashError, noticeAccessDenied), nil
	}
	userID := *sess.UserID

	current, hasCurrent := m.resolver.CurrentTenantID(sess)

	if !hasCurrent {
		t, err := m.resolver.provider.GetTenant(ctx, routeTenantID)
		if err != nil {
			if errors.Is(err, tenant.ErrTenantNotFound) {
				return RedirectWithFlash(m.cfg.DefaultPath, session.FlashError, noticeAccessDenied), nil
			}
			return Pass(), err
		}

		allowed, err := m.checker.CanViewTenant(ctx, userID, t)
		if err != nil {
			return Pass(), err
		}
		if !allowed {
			return RedirectWithFlash(m.cfg.DefaultPath, session.FlashError, noticeAccessDenied), nil
		}

		m.resolver.SetCurrentTenant(ctx, sess, t)
		return Pass(), nil
	}

	if current != routeTenantID {
		return RedirectWithFlash(m.cfg.DefaultPath, session.FlashWarning, noticeContextMismatch), nil
	}

	return Pass(), nil
}

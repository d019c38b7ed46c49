package tenantctx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// DefaultTenantParam is the chi route parameter the match middleware
// reads the tenant ID from.
const DefaultTenantParam = "tenantID"

// Middleware returns the context-assignment middleware. It installs the
// per-request resolution cache, runs the assignment decision, and on
// pass-through places the resolved tenant into the request context for
// handlers and the match middleware.
//
// The session must already be in the request context (session.WithSession);
// requests without one are treated as anonymous and passed through.
func (a *Assigner) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithRequestCache(r.Context())
			sess, _ := session.FromContext(ctx)

			decision, err := a.Assign(ctx, sess, r.URL.RequestURI())
			if err != nil {
				a.log.ErrorContext(ctx, "tenant context assignment failed", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !decision.Continues() {
				applyRedirect(w, r, sess, decision)
				return
			}

			if t := a.resolver.CurrentTenant(ctx, sess); t != nil {
				ctx = tenant.WithTenant(ctx, t)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Middleware returns the context-match middleware for routes carrying a
// tenant ID parameter. Pass an empty param to use DefaultTenantParam.
//
// It requires the assignment middleware earlier in the chain and panics
// otherwise: pipeline order is an invariant, and a missing request cache
// means the match step would see unvalidated context.
func (m *Matcher) Middleware(param string) func(http.Handler) http.Handler {
	if param == "" {
		param = DefaultTenantParam
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := cacheFromContext(ctx); !ok {
				panic("tenantctx: match middleware requires the assignment middleware to run first")
			}
			sess, _ := session.FromContext(ctx)

			raw := chi.URLParam(r, param)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			routeTenantID, err := uuid.Parse(raw)
			if err != nil {
				applyRedirect(w, r, sess, RedirectWithFlash(m.cfg.DefaultPath, session.FlashError, noticeAccessDenied))
				return
			}

			decision, err := m.Match(ctx, sess, routeTenantID)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !decision.Continues() {
				applyRedirect(w, r, sess, decision)
				return
			}

			// Adoption may have just selected the route tenant; refresh
			// the context tenant so handlers see it.
			if t := m.resolver.CurrentTenant(ctx, sess); t != nil {
				ctx = tenant.WithTenant(ctx, t)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// applyRedirect queues the decision's flash on the session and issues the
// HTTP redirect.
func applyRedirect(w http.ResponseWriter, r *http.Request, sess *session.Session, d Decision) {
	if d.Flash != nil && sess != nil {
		session.AddFlash(sess, d.Flash.Kind, d.Flash.Message)
	}
	http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
}

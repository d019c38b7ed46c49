package tenantctx

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// Session keys owned by this package.
const (
	currentTenantKey = "current_tenant_id"
	intendedURLKey   = "intended_url"
)

// Resolver bridges the session-scoped tenant selection and the tenant
// records behind it. Lookups go through a request-scoped cache installed
// by the assignment middleware, so one request resolves the tenant row
// at most once.
//
// Resolver methods never fail: an absent or dangling tenant selection is
// represented as nil, not as an error.
type Resolver struct {
	provider tenant.Provider
}

// NewResolver creates a resolver over the given tenant provider.
func NewResolver(provider tenant.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// requestCache memoizes the resolved tenant for the duration of one
// request. It is carried in the request context and never shared across
// requests.
type requestCache struct {
	mu       sync.Mutex
	resolved *tenant.Tenant
	valid    bool
}

type cacheContextKey struct{}

// WithRequestCache installs a fresh per-request resolution cache into the
// context. The assignment middleware calls this once at the top of the
// pipeline.
func WithRequestCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheContextKey{}, &requestCache{})
}

func cacheFromContext(ctx context.Context) (*requestCache, bool) {
	c, ok := ctx.Value(cacheContextKey{}).(*requestCache)
	return c, ok
}

// CurrentTenantID returns the tenant ID stored in the session, without
// resolving the tenant row.
func (r *Resolver) CurrentTenantID(sess *session.Session) (uuid.UUID, bool) {
	raw, ok := sess.GetString(currentTenantKey)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// HasCurrentTenant reports whether a tenant ID is stored in the session.
// Existence check only; the referenced tenant may no longer exist.
func (r *Resolver) HasCurrentTenant(sess *session.Session) bool {
	_, ok := r.CurrentTenantID(sess)
	return ok
}

// CurrentTenant returns the tenant referenced by the session, or nil when
// nothing is selected or the tenant no longer exists. The result is
// cached in the request context for subsequent calls within the same
// request.
func (r *Resolver) CurrentTenant(ctx context.Context, sess *session.Session) *tenant.Tenant {
	cache, cached := cacheFromContext(ctx)
	if cached {
		cache.mu.Lock()
		if cache.valid {
			t := cache.resolved
			cache.mu.Unlock()
			return t
		}
		cache.mu.Unlock()
	}

	t := r.lookup(ctx, sess)

	if cached {
		cache.mu.Lock()
		cache.resolved = t
		cache.valid = true
		cache.mu.Unlock()
	}
	return t
}

func (r *Resolver) lookup(ctx context.Context, sess *session.Session) *tenant.Tenant {
	id, ok := r.CurrentTenantID(sess)
	if !ok {
		return nil
	}
	t, err := r.provider.GetTenant(ctx, id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return nil
		}
		// Treat transient lookup failures as "no tenant"; the
		// assignment middleware will retry on the next request.
		return nil
	}
	return t
}

// SetCurrentTenant writes the tenant selection into the session (or
// clears it when t is nil) and refreshes the request cache.
func (r *Resolver) SetCurrentTenant(ctx context.Context, sess *session.Session, t *tenant.Tenant) {
	if t == nil {
		sess.Delete(currentTenantKey)
	} else {
		sess.Set(currentTenantKey, t.ID.String())
	}

	if cache, ok := cacheFromContext(ctx); ok {
		cache.mu.Lock()
		cache.resolved = t
		cache.valid = true
		cache.mu.Unlock()
	}
}

// ScopeKey returns the stored tenant ID as the permission-engine scope
// token, or the global sentinel when no tenant is selected.
func (r *Resolver) ScopeKey(sess *session.Session) grants.Scope {
	id, ok := r.CurrentTenantID(sess)
	if !ok {
		return grants.Global
	}
	return grants.ForTenant(id)
}

// RecordIntendedURL remembers the originally requested URL so the host
// application can send the user back after tenant creation.
func RecordIntendedURL(sess *session.Session, url string) {
	if url != "" {
		sess.Set(intendedURLKey, url)
	}
}

// ConsumeIntendedURL pops the recorded URL, if any.
func ConsumeIntendedURL(sess *session.Session) (string, bool) {
	url, ok := sess.GetString(intendedURLKey)
	if ok {
		sess.Delete(intendedURLKey)
	}
	return url, ok && url != ""
}

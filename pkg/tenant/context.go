package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithTenant stashes the resolved tenant in the request context. The
// assignment middleware calls this once per request; everything
// downstream reads it back with FromContext.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tenant stored by WithTenant. ok is false when
// the request carries none.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(ctxKey{}).(*Tenant)
	return t, ok && t != nil
}

// IDFromContext is FromContext reduced to the identifier.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return t.ID, true
}

// MustFromContext is for handlers mounted behind the match middleware,
// where a missing tenant means the pipeline is miswired. Panics when the
// context carries no tenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor annotates log records with the tenant_id of the
// request, when one was resolved. Wire it through
// logger.WithContextExtractors.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, ok := IDFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("tenant_id", id.String()), true
	}
}

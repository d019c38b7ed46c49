package tenantkit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tenantkit/tenantkit/pkg/action"
	"github.com/tenantkit/tenantkit/pkg/authz"
	"github.com/tenantkit/tenantkit/pkg/grants"
	"github.com/tenantkit/tenantkit/pkg/session"
	"github.com/tenantkit/tenantkit/pkg/tenantctx"
)

// Kit wires the tenancy building blocks together: storage, session-backed
// context resolution, authorization checks, the two context middlewares,
// and the business actions. Applications construct one Kit at startup and
// mount its middlewares on their router.
type Kit struct {
	storage  action.Storage
	sessions session.Store

	Resolver *tenantctx.Resolver
	Checker  *authz.Checker
	Assigner *tenantctx.Assigner
	Matcher  *tenantctx.Matcher
	Sharer   *tenantctx.Sharer
	Actions  *action.Service

	cfg tenantctx.Config
	log *slog.Logger
}

// Option configures the Kit.
type Option func(*options)

type options struct {
	cfg         tenantctx.Config
	catalog     *grants.Catalog
	log         *slog.Logger
	checkerOpts []authz.Option
}

// WithConfig overrides the middleware paths and exemptions.
func WithConfig(cfg tenantctx.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithCatalog overrides the role catalog used by the actions.
func WithCatalog(catalog *grants.Catalog) Option {
	return func(o *options) {
		if catalog != nil {
			o.catalog = catalog
		}
	}
}

// WithLogger sets the logger shared by the kit's components.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCheckerOptions forwards options to the authorization checker,
// such as the platform role names.
func WithCheckerOptions(opts ...authz.Option) Option {
	return func(o *options) { o.checkerOpts = append(o.checkerOpts, opts...) }
}

// New assembles a Kit on top of the given storage and session store.
func New(storage action.Storage, sessions session.Store, opts ...Option) *Kit {
	o := &options{
		cfg: tenantctx.DefaultConfig(),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	resolver := tenantctx.NewResolver(storage.Tenants())
	checker := authz.NewChecker(storage.Tenants(), storage.Grants(), o.checkerOpts...)

	actionOpts := []action.ServiceOption{}
	if o.catalog != nil {
		actionOpts = append(actionOpts, action.WithCatalog(o.catalog))
	}

	return &Kit{
		storage:  storage,
		sessions: sessions,
		Resolver: resolver,
		Checker:  checker,
		Assigner: tenantctx.NewAssigner(resolver, storage.Tenants(), checker, o.cfg, tenantctx.WithAssignerLogger(o.log)),
		Matcher:  tenantctx.NewMatcher(resolver, checker, o.cfg),
		Sharer:   tenantctx.NewSharer(resolver, checker),
		Actions:  action.NewService(storage, resolver, actionOpts...),
		cfg:      o.cfg,
		log:      o.log,
	}
}

// Storage exposes the underlying storage for direct store access.
func (k *Kit) Storage() action.Storage { return k.storage }

// Sessions exposes the session store.
func (k *Kit) Sessions() session.Store { return k.sessions }

// SessionMiddleware loads the session identified by the named cookie into
// the request context and persists it again after the handler finishes,
// so flash notices and tenant switches written during the request survive.
// Requests without a cookie or with an unknown token pass through as
// anonymous.
func (k *Kit) SessionMiddleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := k.sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := session.WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			if err := k.sessions.Save(r.Context(), sess); err != nil {
				k.log.ErrorContext(r.Context(), "failed to persist session", slog.Any("error", err))
			}
		})
	}
}

// AssignMiddleware returns the context-assignment middleware. Mount it on
// every authenticated route group, after SessionMiddleware.
func (k *Kit) AssignMiddleware() func(http.Handler) http.Handler {
	return k.Assigner.Middleware()
}

// MatchMiddleware returns the context-match middleware for routes that
// carry a tenant ID parameter. Mount it after AssignMiddleware; it panics
// if the assignment step did not run. Pass an empty param to use
// tenantctx.DefaultTenantParam.
func (k *Kit) MatchMiddleware(param string) func(http.Handler) http.Handler {
	return k.Matcher.Middleware(param)
}

// Shared builds the per-request shared view state (current tenant,
// accessible tenants, platform flags, queued flash notices) for the
// session in ctx. Returns an empty Shared for anonymous requests.
func (k *Kit) Shared(ctx context.Context) (*tenantctx.Shared, error) {
	sess, _ := session.FromContext(ctx)
	return k.Sharer.Build(ctx, sess)
}

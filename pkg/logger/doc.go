// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static attributes,
// and ContextExtractor callbacks that pull attributes out of the request
// context on every Handle call. The tenant package exposes an extractor that
// records the active tenant ID, so wiring it here makes every log line
// emitted behind the context middleware carry the tenant automatically:
//
//	log := logger.New(
//	    logger.WithProduction("app"),
//	    logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Helper constructors such as Error, UserID, and TenantID keep attribute
// naming consistent across the codebase. Error and Errors produce attributes
// only when the supplied error is non-nil, allowing
//
//	log.Info("done", logger.Error(err))
//
// without an extra nil check.
package logger

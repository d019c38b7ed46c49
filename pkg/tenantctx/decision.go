package tenantctx

import "github.com/tenantkit/tenantkit/pkg/session"

// Decision is the outcome of a context middleware step. Redirects are
// modeled as values rather than performed as side effects, so the core
// logic stays testable without an HTTP stack and the host application
// decides how to translate a redirect into a response.
type Decision struct {
	// Redirect is the target path when the request must not proceed as
	// routed. Empty means pass through.
	Redirect string

	// Flash optionally carries a notice to show after the redirect.
	Flash *session.Flash
}

// Continues reports whether the request should proceed unchanged.
func (d Decision) Continues() bool {
	return d.Redirect == ""
}

// Pass is the pass-through decision.
func Pass() Decision {
	return Decision{}
}

// RedirectTo redirects without a notice.
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// RedirectWithFlash redirects and queues a one-shot notice.
func RedirectWithFlash(path string, kind session.FlashKind, message string) Decision {
	return Decision{
		Redirect: path,
		Flash:    &session.Flash{Kind: kind, Message: message},
	}
}

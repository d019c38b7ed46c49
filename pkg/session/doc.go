// Package session models the per-user session: an expiring data bag keyed
// by an opaque token. The tenantctx package stores the selected tenant ID
// in it; flash notices and post-creation redirect targets travel through
// it as well.
//
// Transport is out of scope here. The host application decides how the
// token reaches the request (cookie, header) and when to call Save; the
// kit only needs the session present in the request context:
//
//	sess, err := store.Get(ctx, token)
//	ctx = session.WithSession(ctx, sess)
//	...
//	err = store.Save(ctx, sess)
//
// Two stores ship with the package: MemoryStore for tests and single-node
// setups, RedisStore for production. RedisStore persists sessions as JSON
// with a TTL matching the session expiry.
//
// Flash notices are one-shot messages carried across redirects:
//
//	session.AddFlash(sess, session.FlashWarning, "Workspace context mismatch.")
//	notices := session.PopFlashes(sess) // cleared after reading
package session

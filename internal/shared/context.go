package shared

import "context"

// ctxKeySession is unexported so only this package can attach a session;
// middleware installs it, handlers and audit logging read it back.
type ctxKeySession struct{}

// ContextWithSession returns ctx carrying the authenticated session.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession{}, sess)
}

// SessionFromContext returns the session attached by the auth middleware,
// or nil on an unauthenticated request.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxKeySession{}).(*Session)
	return sess
}

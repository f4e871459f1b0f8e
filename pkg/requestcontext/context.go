// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware and consumed by services. Keeping this package
// free of net/http dependencies lets services import only what they need.
//
// Expiry math in the core never calls time.Now directly: operations take an
// explicit tick, and the HTTP layer derives that tick from the request-scoped
// time stored here. Tests inject a fixed time with WithTime.
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	callerKey      struct{}
	appIDKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyCaller      = callerKey{}
	ContextKeyAppID       = appIDKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Caller retrieves the authenticated caller address (canonical hex) from the
// context. Returns "" if not set.
func Caller(ctx context.Context) string {
	if addr, ok := ctx.Value(ContextKeyCaller).(string); ok {
		return addr
	}
	return ""
}

// WithCaller injects a caller address into the context.
func WithCaller(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, addr)
}

// AppID retrieves the calling application identity from the context.
func AppID(ctx context.Context) string {
	if app, ok := ctx.Value(ContextKeyAppID).(string); ok {
		return app
	}
	return ""
}

// WithAppID injects a calling application identity into the context.
func WithAppID(ctx context.Context, app string) context.Context {
	return context.WithValue(ctx, ContextKeyAppID, app)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// Tick converts the request-scoped time into the epoch-millisecond tick the
// registrar compares expiries against.
func Tick(ctx context.Context) uint64 {
	return uint64(Now(ctx).UnixMilli())
}

// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"net/http"
	"time"

	"nameledger/pkg/requestcontext"
)

// WithAuth injects a caller address and application identity into the request
// context. This simulates what the auth middleware does for authenticated
// requests.
func WithAuth(req *http.Request, caller, app string) *http.Request {
	ctx := req.Context()
	if caller != "" {
		ctx = requestcontext.WithCaller(ctx, caller)
	}
	if app != "" {
		ctx = requestcontext.WithAppID(ctx, app)
	}
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock, which fixes the tick every
// expiry comparison in the request sees.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

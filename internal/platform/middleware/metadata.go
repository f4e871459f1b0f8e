package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"nameledger/pkg/requestcontext"
)

// RequestMetadata stamps every request with an ID and a capture time.
//
// The capture time is what the services convert into the tick all expiry
// comparisons use, so a single request observes one consistent clock even
// when it touches several names.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

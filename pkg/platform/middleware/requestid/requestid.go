// Package requestid assigns a correlation ID to every inbound request.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"lunchgate/pkg/requestcontext"
)

// Header is the response header carrying the correlation ID so callers can
// reference it in support requests.
const Header = "X-Request-Id"

// RequestID middleware generates a UUID per request, stores it in the
// context for handlers and services, and echoes it in the response header.
// An inbound X-Request-Id is trusted and propagated unchanged so upstream
// proxies can correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		w.Header().Set(Header, reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"bugninjaplatform/internal/metrics"
)

// Metrics records every request on m, labelled by the matched route pattern
// so that path parameters do not explode label cardinality.
func Metrics(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(r.Method, route, strconv.Itoa(wrapped.status), time.Since(start).Seconds())
	})
}

package middleware

import (
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/metrics"
)

// Metrics records HTTP RED metrics labelled by route pattern, so path ids do not
// explode label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		done := metrics.HTTPRequestStarted()
		defer done()

		rec := newRecorder(w)
		next.ServeHTTP(rec, r)

		metrics.ObserveHTTPRequest(r.Method, routePattern(r), rec.Status(), time.Since(start))
	})
}

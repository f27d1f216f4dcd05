package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics records request latency per route and counts responses with status >= 400.
// The method label is "<HTTP method> <route pattern>" so ids never end up in label values.
func Metrics(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			method := r.Method + " " + route
			m.APILatency.WithLabelValues(method).Observe(time.Since(start).Seconds())

			if status := ww.Status(); status >= http.StatusBadRequest {
				m.APIErrorsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
			}
		})
	}
}

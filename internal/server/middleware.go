package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/stagecue/cueboard/internal/metrics"
)

// requestIDHeader carries the per-request correlation ID.
const requestIDHeader = "X-Request-Id"

// instrument assigns a correlation ID, records request metrics, and logs
// each request at debug level.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// the wrapper saw no write: either the connection was hijacked
			// for a websocket upgrade or the response defaulted to 200
			if r.Header.Get("Upgrade") == "websocket" {
				status = http.StatusSwitchingProtocols
			} else {
				status = http.StatusOK
			}
		}

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		metrics.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.Observe(time.Since(start).Seconds())

		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", reqID,
		)
	})
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cueboard Prometheus metrics. Defined in a standalone package so both the
// store and the HTTP server can record without importing each other.

var (
	Mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cue_mutations_total",
		Help: "Committed signal mutations by operation (letter, digit, clear)",
	}, []string{"op"})

	InvalidInput = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cue_invalid_input_total",
		Help: "Control requests rejected by input validation",
	})

	Waiters = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cue_waiters",
		Help: "Requests currently suspended waiting for the next change",
	})

	LongPollTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cue_longpoll_timeouts_total",
		Help: "Long-poll requests that timed out with no change",
	})

	WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cue_ws_connections",
		Help: "Open viewer websocket connections",
	})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"path", "code"})

	HTTPDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request handling duration in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// Register registers all cueboard metrics on the given registry (or the
// default if nil). Already-registered collectors are tolerated so Register
// is safe to call more than once.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{
		Mutations,
		InvalidInput,
		Waiters,
		LongPollTimeouts,
		WSConnections,
		HTTPRequests,
		HTTPDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// Package metrics instruments HTTP traffic for the /metrics endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedline",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "feedline",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency. The upper buckets cover multipart image uploads.",
			Buckets:   []float64{.005, .025, .1, .25, 1, 5, 15},
		},
		[]string{"method", "route"},
	)

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "feedline",
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Requests currently being handled.",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records count, latency and an in-flight gauge per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight.Inc()
		defer inFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		// label by route pattern, not raw path, so /feed/posts/{postId}
		// stays one series no matter how many posts exist
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

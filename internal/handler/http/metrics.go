package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-selection/internal/handler/http/pathutil"
	"catalog-selection/internal/handler/http/responsewriter"
)

// serverMetrics are the RED metrics of the API server, labelled by route
// (pathutil.NormalizePath) instead of the raw path.
type serverMetrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	requestSize  *prometheus.HistogramVec
	responseSize *prometheus.HistogramVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	f := promauto.With(reg)
	sizeBuckets := prometheus.ExponentialBuckets(64, 4, 8)
	return &serverMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "path", "status"}),
		// selection toggles answer in microseconds, page loads wait on the catalog
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path", "status"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
		requestSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "Declared size of HTTP request bodies",
			Buckets: sizeBuckets,
		}, []string{"method", "path"}),
		responseSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP response bodies",
			Buckets: sizeBuckets,
		}, []string{"method", "path"}),
	}
}

func (m *serverMetrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		route := pathutil.NormalizePath(r.URL.Path)
		if r.ContentLength > 0 {
			m.requestSize.WithLabelValues(r.Method, route).Observe(float64(r.ContentLength))
		}

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)
		elapsed := time.Since(start)

		code := strconv.Itoa(rw.StatusCode())
		m.requests.WithLabelValues(r.Method, route, code).Inc()
		m.duration.WithLabelValues(r.Method, route, code).Observe(elapsed.Seconds())
		m.responseSize.WithLabelValues(r.Method, route).Observe(float64(rw.BytesWritten()))
	})
}

var defaultServerMetrics = newServerMetrics(prometheus.DefaultRegisterer)

// MetricsMiddleware records request count, latency, sizes and in-flight
// requests in the default registry.
func MetricsMiddleware(next http.Handler) http.Handler {
	return defaultServerMetrics.middleware(next)
}

// MetricsHandler serves the default registry for Prometheus to scrape.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

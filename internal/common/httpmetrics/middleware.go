package httpmetrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/asafonov/blog-backend/internal/observability/metrics"
)

type Collector struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := NormalizePath(r.URL.Path)

		metrics.APIRequestsTotal.WithLabelValues(r.Method, path).Inc()
		metrics.APIRequestsInFlight.Inc()
		defer metrics.APIRequestsInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.APIRequestDurationSeconds.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(recorder.status),
		).Observe(time.Since(start).Seconds())
	})
}

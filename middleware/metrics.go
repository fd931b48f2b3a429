package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/candango/interpose"
)

// Metrics holds the Prometheus collectors the instrumentation middleware
// feeds.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the pipeline metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interpose_requests_total",
				Help: "Total number of requests processed.",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interpose_request_duration_seconds",
				Help:    "Request duration in seconds.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

// Instrument counts and times every request flowing through the pipeline.
// Failures count under the "error" status and misses under "miss", keeping
// them distinguishable from real HTTP statuses.
func Instrument(m *Metrics) interpose.HTTPMiddleware {
	return func(next interpose.HTTPHandler) interpose.HTTPHandler {
		return interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(ctx context.Context, req *interpose.Request) (*interpose.Response, error) {
				start := time.Now()
				resp, err := next.Handle(ctx, req)
				status := "error"
				switch {
				case interpose.IsUnhandled(err):
					status = "miss"
				case err == nil:
					status = strconv.Itoa(resp.Status)
				}
				m.RequestsTotal.WithLabelValues(req.Method, status).Inc()
				m.RequestDuration.WithLabelValues(req.Method).
					Observe(time.Since(start).Seconds())
				return resp, err
			})
	}
}

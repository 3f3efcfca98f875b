package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client-side request instruments.
//
//   - newsassist_api_requests_total{route,method,outcome}: one increment per
//     call, outcome is "ok" or the error kind
//   - newsassist_api_request_duration_seconds{route,method}: wall time of the
//     round trip including body decode
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the instruments and registers them on reg. A nil reg
// leaves them unregistered, which is what most tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsassist",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests issued by the client, by route, method and outcome.",
		}, []string{"route", "method", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "newsassist",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of API requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) observe(route, method, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, method, outcome).Inc()
	m.Duration.WithLabelValues(route, method).Observe(seconds)
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if k := KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the service's own Prometheus registry, served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studentsites",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentsites",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)

	OrdersSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studentsites",
			Subsystem: "orders",
			Name:      "submitted_total",
			Help:      "Orders accepted through the intake form",
		},
	)

	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentsites",
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Order status transitions by outcome and target status",
		},
		[]string{"status", "outcome"},
	)

	OfferWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentsites",
			Subsystem: "offers",
			Name:      "writes_total",
			Help:      "Offer create, toggle and delete operations",
		},
		[]string{"operation"},
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentsites",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Read-model cache lookups by key and result",
		},
		[]string{"key", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		HTTPRequestsTotal,
		OrdersSubmittedTotal,
		OrderTransitionsTotal,
		OfferWritesTotal,
		CacheLookupsTotal,
	)
}

func RecordOrderSubmitted() {
	OrdersSubmittedTotal.Inc()
}

// RecordOrderTransition counts a transition attempt. outcome is "applied",
// "rejected" or "conflict".
func RecordOrderTransition(status, outcome string) {
	OrderTransitionsTotal.WithLabelValues(status, outcome).Inc()
}

func RecordOfferWrite(operation string) {
	OfferWritesTotal.WithLabelValues(operation).Inc()
}

func RecordCacheLookup(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(key, result).Inc()
}

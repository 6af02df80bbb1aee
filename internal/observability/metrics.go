package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	rosterOperationsTotal *prometheus.CounterVec
	rosterParticipants    *prometheus.GaugeVec
	rosterSubscribers     prometheus.Gauge
	rosterEventsTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activities_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_http_errors_total",
			Help: "Total number of error responses returned.",
		}, []string{"method", "route", "status"})

		rosterOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_roster_operations_total",
			Help: "Signup and unregister attempts by outcome.",
		}, []string{"operation", "outcome"})

		rosterParticipants = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "activities_roster_participants",
			Help: "Current number of participants per activity.",
		}, []string{"activity"})

		rosterSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "activities_roster_stream_subscribers",
			Help: "Number of connected roster stream subscribers.",
		})

		rosterEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_roster_events_total",
			Help: "Roster events delivered per sink and outcome.",
		}, []string{"sink", "outcome"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			rosterOperationsTotal,
			rosterParticipants,
			rosterSubscribers,
			rosterEventsTotal,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the error response counter.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// RosterOperations exposes the signup/unregister outcome counter.
func RosterOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return rosterOperationsTotal
}

// RosterParticipants exposes the per-activity roster size gauge.
func RosterParticipants() *prometheus.GaugeVec {
	RegisterMetrics()
	return rosterParticipants
}

// RosterSubscribers exposes the connected stream subscriber gauge.
func RosterSubscribers() prometheus.Gauge {
	RegisterMetrics()
	return rosterSubscribers
}

// RosterEvents exposes the event delivery counter.
func RosterEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return rosterEventsTotal
}

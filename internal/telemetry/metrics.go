// Package telemetry exposes the prometheus instrumentation for the daemon.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections tracks currently open client connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "rt2ephem",
		Name:      "active_connections",
		Help:      "Number of open client connections.",
	})

	// ConnectionsTotal counts every accepted connection.
	ConnectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rt2ephem",
		Name:      "connections_total",
		Help:      "Accepted client connections.",
	})

	// RequestsTotal counts handled commands by kind and outcome.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rt2ephem",
		Name:      "requests_total",
		Help:      "Handled commands by kind and outcome.",
	}, []string{"kind", "outcome"})

	// RequestDuration observes wall time spent handling one command.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rt2ephem",
		Name:      "request_duration_seconds",
		Help:      "Command handling time in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	// ProtocolViolations counts connections dropped over unparseable frames.
	ProtocolViolations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rt2ephem",
		Name:      "protocol_violations_total",
		Help:      "Connections dropped for framing errors.",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

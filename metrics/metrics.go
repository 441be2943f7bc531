// Package metrics keeps the prometheus collectors of the gateway.
// All methods are safe to call on a nil *Metrics, then nothing is collected.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ballot_token"

// Outcomes of the chain call
const (
	OK   = "ok"
	FAIL = "fail"
)

type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	chainCalls   *prometheus.CounterVec
}

// New registers the collectors on a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of the handled http requests.",
		}, []string{"method", "path", "status"}),
		chainCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_calls_total",
			Help:      "Number of the operations made against the blockchain.",
		}, []string{"operation", "outcome"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.chainCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest counts the http request.
// The path should be the route pattern, not the raw path, to keep the cardinality low.
func (m *Metrics) ObserveRequest(method string, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// ObserveChainCall counts the operation against the blockchain.
func (m *Metrics) ObserveChainCall(operation string, err error) {
	if m == nil {
		return
	}
	outcome := OK
	if err != nil {
		outcome = FAIL
	}
	m.chainCalls.WithLabelValues(operation, outcome).Inc()
}

// Registry returns the registry with the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the http handler that exposes the metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

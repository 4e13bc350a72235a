package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus registry, the HTTP server exposing it,
// and the counters the term store reports on.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	// TermOperations counts coordinator operations by operation name
	// ("create", "update", "delete", "query", ...) and outcome ("ok", "error").
	TermOperations *prometheus.CounterVec

	// IndexDivergence counts writes where the store of record succeeded
	// but the search index write failed, i.e. the two systems diverged.
	IndexDivergence prometheus.Counter

	serviceName string
}

// NewMetrics creates a registry, registers the term store collectors and
// returns a Metrics instance whose Server is ready to be started.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	termOperations := createCounterVec(
		"term_operations_total",
		"Total term and vocabulary operations, by operation and status.",
		[]string{"operation", "status"},
	)
	indexDivergence := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "index_divergence_total",
		Help: "Writes where the relational store succeeded but the search index write failed.",
	})
	wrappedRegistry.MustRegister(termOperations, indexDivergence)

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    address,
		Handler: handler,
	}

	return &Metrics{
		Server:          server,
		Registry:        registry,
		TermOperations:  termOperations,
		IndexDivergence: indexDivergence,
		serviceName:     cfg.ServiceName,
	}
}

// Start begins serving the /metrics endpoint. It blocks until the server
// stops, so callers normally run it in a goroutine.
func (m *Metrics) Start() error {
	if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the metrics server down gracefully.
func (m *Metrics) Stop(ctx context.Context) error {
	return m.Server.Shutdown(ctx)
}

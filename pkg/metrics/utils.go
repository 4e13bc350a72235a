package metrics

import "github.com/prometheus/client_golang/prometheus"

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// ObserveOperation records one coordinator operation outcome.
// A nil Metrics receiver is a no-op so components can run without metrics wired.
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TermOperations.WithLabelValues(operation, status).Inc()
}

// ObserveDivergence records one store/index divergence event.
func (m *Metrics) ObserveDivergence() {
	if m == nil {
		return
	}
	m.IndexDivergence.Inc()
}

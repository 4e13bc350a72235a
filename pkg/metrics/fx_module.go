package metrics

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the Metrics instance and manages the lifecycle of the
// HTTP server exposing the /metrics endpoint.
//
// Dependencies required by this module:
// - A metrics.Config instance must be available in the dependency injection container
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics server on application start
// and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				_ = m.Start()
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Stop(ctx)
		},
	})
}

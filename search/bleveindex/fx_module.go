package bleveindex

import (
	"context"

	"go.uber.org/fx"

	"github.com/openvocab/termstore/search"
)

// FXModule provides the bleve index as the search.Client implementation
// and closes it on shutdown.
//
// Dependencies required by this module:
// - A bleveindex.Config instance must be available in the dependency injection container
// - A bleveindex.Logger implementation (pkg/logger satisfies it)
var FXModule = fx.Module("bleveindex",
	fx.Provide(
		New,
		ProvideClient,
	),
	fx.Invoke(RegisterIndexLifecycle),
)

// ProvideClient exposes the concrete index under the search.Client interface.
func ProvideClient(ix *Index) search.Client {
	return ix
}

// RegisterIndexLifecycle closes the index on application shutdown.
func RegisterIndexLifecycle(lc fx.Lifecycle, ix *Index) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ix.Close()
		},
	})
}

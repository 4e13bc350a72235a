package vocabulary

import (
	"go.uber.org/fx"

	"github.com/openvocab/termstore/pkg/logger"
	"github.com/openvocab/termstore/store"
)

// FXModule provides the vocabulary registry.
//
// Dependencies required by this module:
// - store.FXModule (repositories)
// - logger.FXModule
var FXModule = fx.Module("vocabulary",
	fx.Provide(
		func(s *store.Vocabularies, log *logger.Logger) *Registry {
			return NewRegistry(s, log)
		},
	),
)

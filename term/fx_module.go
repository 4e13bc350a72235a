package term

import (
	"go.uber.org/fx"

	"github.com/openvocab/termstore/pkg/logger"
	"github.com/openvocab/termstore/pkg/metrics"
	"github.com/openvocab/termstore/search"
	"github.com/openvocab/termstore/store"
	"github.com/openvocab/termstore/vocabulary"
)

// FXModule provides the term coordinator.
//
// Dependencies required by this module:
// - A term.Config instance (base URI for local minting)
// - store.FXModule, vocabulary.FXModule, a search.Client provider
//   (e.g. bleveindex.FXModule), logger.FXModule and metrics.FXModule
var FXModule = fx.Module("term",
	fx.Provide(
		func(cfg Config, terms *store.Terms, vocabs *vocabulary.Registry, index search.Client, log *logger.Logger, m *metrics.Metrics) (*Coordinator, error) {
			return NewCoordinator(cfg, terms, vocabs, index, log, m)
		},
	),
)

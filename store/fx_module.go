package store

import (
	"go.uber.org/fx"
)

// FXModule provides the relational repositories and provisions the schema
// on startup.
//
// Dependencies required by this module:
// - A *postgres.Postgres instance (see pkg/postgres.FXModule)
var FXModule = fx.Module("store",
	fx.Provide(
		NewVocabularies,
		NewTerms,
	),
	fx.Invoke(Provision),
)

package store

import (
	"fmt"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
)

// Provision creates the vocabularies and terms tables with their unique
// keys. It is idempotent: existing objects are left untouched, so it is
// safe to run on every startup.
func Provision(db *postgres.Postgres) error {
	if err := db.Migrate(&model.Vocabulary{}, &model.Term{}); err != nil {
		return fmt.Errorf("provision term store schema: %w", err)
	}
	return nil
}

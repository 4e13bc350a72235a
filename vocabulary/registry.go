// Package vocabulary manages the named collections terms belong to.
//
// A vocabulary is a row in the store of record; it has no presence in the
// search index. The registry validates string keys, maps store conflicts
// onto the typed errors of this package, and leaves term rows alone on
// delete (orphaning is possible and is a known gap of the data model).
package vocabulary

import (
	"context"
	"errors"
	"fmt"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
	"github.com/openvocab/termstore/validate"
)

// Store is the slice of the relational repository the registry needs.
// *store.Vocabularies implements it.
type Store interface {
	Insert(ctx context.Context, vocab *model.Vocabulary) error
	FindByKey(ctx context.Context, stringKey string) (*model.Vocabulary, error)
	UpdateLabel(ctx context.Context, stringKey, label string) (int64, error)
	DeleteByKey(ctx context.Context, stringKey string) error
}

// Logger defines the logging operations the registry needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Registry implements vocabulary create/find/update/delete.
type Registry struct {
	store  Store
	logger Logger
}

// NewRegistry creates a vocabulary registry on top of the given store.
func NewRegistry(store Store, logger Logger) *Registry {
	return &Registry{store: store, logger: logger}
}

// Create validates the string key and inserts a new vocabulary.
// A malformed or reserved key fails with validate.ErrInvalidKey, a taken
// key with ErrVocabularyExists.
func (r *Registry) Create(ctx context.Context, stringKey, displayLabel string) (*model.Vocabulary, error) {
	if err := validate.VocabularyKey(stringKey); err != nil {
		return nil, err
	}

	vocab := &model.Vocabulary{
		StringKey:    stringKey,
		DisplayLabel: displayLabel,
	}
	if err := r.store.Insert(ctx, vocab); err != nil {
		if errors.Is(err, postgres.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %q", ErrVocabularyExists, stringKey)
		}
		return nil, err
	}

	r.logger.Info("vocabulary created", nil, map[string]interface{}{
		"string_key": stringKey,
	})
	return vocab, nil
}

// Find returns the vocabulary with the given string key, or nil when absent.
func (r *Registry) Find(ctx context.Context, stringKey string) (*model.Vocabulary, error) {
	return r.store.FindByKey(ctx, stringKey)
}

// Update changes the display label of an existing vocabulary. It fails with
// ErrVocabularyNotFound when the key is absent; the key itself is immutable.
func (r *Registry) Update(ctx context.Context, stringKey, displayLabel string) error {
	affected, err := r.store.UpdateLabel(ctx, stringKey, displayLabel)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrVocabularyNotFound, stringKey)
	}
	return nil
}

// Delete removes a vocabulary unconditionally: no existence check and no
// cascading term cleanup.
func (r *Registry) Delete(ctx context.Context, stringKey string) error {
	if err := r.store.DeleteByKey(ctx, stringKey); err != nil {
		return err
	}
	r.logger.Info("vocabulary deleted", nil, map[string]interface{}{
		"string_key": stringKey,
	})
	return nil
}

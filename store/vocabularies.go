// Package store holds the gorm-backed repositories for the term store's
// relational store of record. Errors leave these repositories already
// normalized through postgres.TranslateError, so consumers branch on the
// postgres sentinels (ErrRecordNotFound, ErrDuplicateKey, ...).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
)

// Vocabularies is the repository for vocabulary rows.
type Vocabularies struct {
	db *postgres.Postgres
}

// NewVocabularies creates the vocabulary repository.
func NewVocabularies(db *postgres.Postgres) *Vocabularies {
	return &Vocabularies{db: db}
}

// Insert writes a new vocabulary row. A string-key collision surfaces as
// postgres.ErrDuplicateKey.
func (v *Vocabularies) Insert(ctx context.Context, vocab *model.Vocabulary) error {
	if err := v.db.Create(ctx, vocab); err != nil {
		return fmt.Errorf("insert vocabulary %q: %w", vocab.StringKey, postgres.TranslateError(err))
	}
	return nil
}

// FindByKey loads a vocabulary row by string key. An absent key returns
// (nil, nil).
func (v *Vocabularies) FindByKey(ctx context.Context, stringKey string) (*model.Vocabulary, error) {
	var vocab model.Vocabulary
	err := v.db.First(ctx, &vocab, "string_key = ?", stringKey)
	if err != nil {
		if errors.Is(postgres.TranslateError(err), postgres.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vocabulary %q: %w", stringKey, postgres.TranslateError(err))
	}
	return &vocab, nil
}

// UpdateLabel changes the display label of an existing vocabulary and
// reports how many rows were touched. The string key is immutable.
func (v *Vocabularies) UpdateLabel(ctx context.Context, stringKey, label string) (int64, error) {
	affected, err := v.db.UpdateWhere(ctx, &model.Vocabulary{},
		map[string]interface{}{"display_label": label},
		"string_key = ?", stringKey)
	if err != nil {
		return 0, fmt.Errorf("update vocabulary %q: %w", stringKey, postgres.TranslateError(err))
	}
	return affected, nil
}

// DeleteByKey removes a vocabulary row. Deleting an absent key is not an
// error, and term rows referencing the vocabulary are left in place.
func (v *Vocabularies) DeleteByKey(ctx context.Context, stringKey string) error {
	if _, err := v.db.Delete(ctx, &model.Vocabulary{}, "string_key = ?", stringKey); err != nil {
		return fmt.Errorf("delete vocabulary %q: %w", stringKey, postgres.TranslateError(err))
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
)

// Terms is the repository for term rows.
type Terms struct {
	db *postgres.Postgres
}

// NewTerms creates the term repository.
func NewTerms(db *postgres.Postgres) *Terms {
	return &Terms{db: db}
}

// Insert writes a new term row inside its own transaction. A URI-hash
// collision surfaces as postgres.ErrDuplicateKey.
func (t *Terms) Insert(ctx context.Context, term *model.Term) error {
	err := t.db.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(term).Error
	})
	if err != nil {
		return fmt.Errorf("insert term %q: %w", term.URI, postgres.TranslateError(err))
	}
	return nil
}

// FindByURI loads a term row through the uri_hash unique key. An absent
// URI returns (nil, nil).
func (t *Terms) FindByURI(ctx context.Context, uri string) (*model.Term, error) {
	var term model.Term
	err := t.db.First(ctx, &term, "uri_hash = ?", model.HashURI(uri))
	if err != nil {
		if errors.Is(postgres.TranslateError(err), postgres.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find term %q: %w", uri, postgres.TranslateError(err))
	}
	return &term, nil
}

// Update persists a loaded term row inside its own transaction.
func (t *Terms) Update(ctx context.Context, term *model.Term) error {
	err := t.db.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Save(term).Error
	})
	if err != nil {
		return fmt.Errorf("update term %q: %w", term.URI, postgres.TranslateError(err))
	}
	return nil
}

// DeleteByURI removes a term row and reports how many rows were removed.
// Deleting an absent URI is not an error.
func (t *Terms) DeleteByURI(ctx context.Context, uri string) (int64, error) {
	affected, err := t.db.Delete(ctx, &model.Term{}, "uri_hash = ?", model.HashURI(uri))
	if err != nil {
		return 0, fmt.Errorf("delete term %q: %w", uri, postgres.TranslateError(err))
	}
	return affected, nil
}

// ForEachBatch streams every term row in batches of batchSize through fn,
// in primary-key order. Used by index rebuilds.
func (t *Terms) ForEachBatch(ctx context.Context, batchSize int, fn func(terms []model.Term) error) error {
	var batch []model.Term
	result := t.db.DB().WithContext(ctx).FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		return fn(batch)
	})
	if result.Error != nil {
		return fmt.Errorf("scan terms: %w", postgres.TranslateError(result.Error))
	}
	return nil
}

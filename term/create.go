package term

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openvocab/termstore/indexdoc"
	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/postgres"
	"github.com/openvocab/termstore/validate"
	"github.com/openvocab/termstore/vocabulary"
)

// CreateRequest describes one term registration.
type CreateRequest struct {
	// VocabularyKey names the vocabulary the term belongs to. The
	// vocabulary must exist; membership is checked, not FK-enforced.
	VocabularyKey string

	// Value is the term's display string.
	Value string

	// URI is the externally-minted term URI. Leave empty and use
	// CreateLocal for system-minted URIs.
	URI string

	// AdditionalFields carries the caller's open metadata.
	AdditionalFields model.FieldMap

	// SkipCommit leaves the index write batched instead of committing
	// it immediately. The default is to commit after every write.
	SkipCommit bool
}

// Create registers an externally-identified term: store row first, then
// index document.
//
// Failure modes: vocabulary.ErrVocabularyNotFound, validate.ErrInvalidURI,
// validate.ErrInvalidFieldKey, ErrURIExists. A store conflict performs no
// index write; an index failure after a successful insert returns
// ErrIndexWriteFailed with the row left standing.
func (c *Coordinator) Create(ctx context.Context, req CreateRequest) (term *model.Term, err error) {
	defer func() { c.metrics.ObserveOperation("create", err) }()

	if err := validate.URI(req.URI); err != nil {
		return nil, err
	}
	return c.create(ctx, req, false)
}

// CreateLocal registers a term under a freshly minted URI below the
// configured base. On a URI collision the random identifier is regenerated,
// up to mintAttempts total attempts; running out fails with ErrMintExhausted.
func (c *Coordinator) CreateLocal(ctx context.Context, req CreateRequest) (term *model.Term, err error) {
	defer func() { c.metrics.ObserveOperation("create_local", err) }()

	for attempt := 1; attempt <= mintAttempts; attempt++ {
		req.URI = c.mintURI(req.VocabularyKey)

		term, err := c.create(ctx, req, true)
		if errors.Is(err, ErrURIExists) {
			c.logger.Warn("minted URI collided, regenerating", err, map[string]interface{}{
				"attempt": attempt,
				"uri":     req.URI,
			})
			continue
		}
		return term, err
	}
	return nil, fmt.Errorf("%w: %d attempts", ErrMintExhausted, mintAttempts)
}

// create is the shared creation sequence for external and local terms.
func (c *Coordinator) create(ctx context.Context, req CreateRequest, local bool) (*model.Term, error) {
	vocab, err := c.vocabs.Find(ctx, req.VocabularyKey)
	if err != nil {
		return nil, err
	}
	if vocab == nil {
		return nil, fmt.Errorf("%w: %q", vocabulary.ErrVocabularyNotFound, req.VocabularyKey)
	}

	if err := validate.AdditionalFields(req.AdditionalFields); err != nil {
		return nil, err
	}

	term := &model.Term{
		VocabularyStringKey: req.VocabularyKey,
		URI:                 req.URI,
		Value:               req.Value,
		Local:               local,
		AdditionalFields:    req.AdditionalFields,
	}
	if err := c.terms.Insert(ctx, term); err != nil {
		if errors.Is(err, postgres.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %q", ErrURIExists, req.URI)
		}
		return nil, err
	}

	if err := c.writeIndex(ctx, term, !req.SkipCommit); err != nil {
		return nil, err
	}

	c.logger.Info("term created", nil, map[string]interface{}{
		"uri":                   term.URI,
		"vocabulary_string_key": term.VocabularyStringKey,
		"is_local":              term.Local,
	})
	return term, nil
}

// writeIndex mirrors a term row into the search index. A failure here is
// the dual-write divergence case: the store succeeded, the index did not.
func (c *Coordinator) writeIndex(ctx context.Context, term *model.Term, commit bool) error {
	doc := indexdoc.FromTerm(term)
	if err := c.index.Upsert(ctx, term.URIHash, doc, commit); err != nil {
		c.metrics.ObserveDivergence()
		c.logger.Error("store and index diverged on term write", err, map[string]interface{}{
			"uri": term.URI,
		})
		return fmt.Errorf("%w: %w", ErrIndexWriteFailed, err)
	}
	return nil
}

// mintURI joins the configured base, the vocabulary key and a fresh
// random identifier.
func (c *Coordinator) mintURI(vocabularyKey string) string {
	return strings.TrimSuffix(c.cfg.BaseURI, "/") + "/" + vocabularyKey + "/" + c.newID()
}

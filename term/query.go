package term

import (
	"context"

	"github.com/openvocab/termstore/indexdoc"
	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/search"
)

// FindByURI looks a term up in the search index (not the store of record)
// by exact URI. Absent terms return (nil, nil).
func (c *Coordinator) FindByURI(ctx context.Context, uri string) (view *model.TermView, err error) {
	defer func() { c.metrics.ObserveOperation("find_by_uri", err) }()

	doc, found, err := c.index.Get(ctx, model.HashURI(uri))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return indexdoc.ToView(doc)
}

// Search issues a ranked partial-match query scoped to a vocabulary.
// Empty query text matches every term of the vocabulary; the empty key or
// "all" drops the vocabulary scope. Ranking and tie-breaking are the
// index's contract, passed through without reordering.
func (c *Coordinator) Search(ctx context.Context, vocabularyKey, query string, limit, start int) (views []*model.TermView, err error) {
	defer func() { c.metrics.ObserveOperation("query", err) }()

	docs, err := c.index.Search(ctx, search.Request{
		VocabularyKey: vocabularyKey,
		Query:         query,
		Limit:         limit,
		Start:         start,
	})
	if err != nil {
		return nil, err
	}

	views = make([]*model.TermView, 0, len(docs))
	for _, doc := range docs {
		view, err := indexdoc.ToView(doc)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

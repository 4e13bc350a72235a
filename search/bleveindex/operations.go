package bleveindex

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/openvocab/termstore/indexdoc"
	"github.com/openvocab/termstore/search"
)

// Upsert queues one document write under the given ID and, when commit is
// set, flushes the pending batch so the write becomes visible.
func (x *Index) Upsert(ctx context.Context, id string, doc search.Document, commit bool) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.pending.Index(id, map[string]interface{}(doc)); err != nil {
		return fmt.Errorf("index document %s: %w", id, err)
	}
	if commit {
		return x.flushLocked()
	}
	return nil
}

// Delete queues the removal of the document with the given ID. Removing an
// absent document is a no-op at the index layer.
func (x *Index) Delete(ctx context.Context, id string, commit bool) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.pending.Delete(id)
	if commit {
		return x.flushLocked()
	}
	return nil
}

// Commit flushes all pending writes, making them visible to readers.
func (x *Index) Commit(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.flushLocked()
}

// flushLocked executes the pending batch. Callers must hold the mutex.
func (x *Index) flushLocked() error {
	if x.pending.Size() == 0 {
		return nil
	}
	if err := x.idx.Batch(x.pending); err != nil {
		return fmt.Errorf("commit search index batch: %w", err)
	}
	x.pending.Reset()
	return nil
}

// Get fetches a single document by its ID.
func (x *Index) Get(ctx context.Context, id string) (search.Document, bool, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{"*"}

	res, err := x.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("get document %s: %w", id, err)
	}
	if res.Total == 0 || len(res.Hits) == 0 {
		return nil, false, nil
	}
	return search.Document(res.Hits[0].Fields), true, nil
}

// Search runs one ranked query.
//
// An empty query text matches everything, ordered alphabetically by value so
// limit/start page deterministically. Non-empty text is ranked exact match
// first, then whole-word partial matches, then substring matches, with ties
// broken alphabetically.
func (x *Index) Search(ctx context.Context, req search.Request) ([]search.Document, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = x.cfg.DefaultLimit
	}
	start := req.Start
	if start < 0 {
		start = 0
	}

	q := x.buildQuery(req)

	sreq := bleve.NewSearchRequestOptions(q, limit, start, false)
	sreq.Fields = []string{"*"}
	if req.Query == "" {
		sreq.SortBy([]string{indexdoc.FieldValueExact})
	} else {
		sreq.SortBy([]string{"-_score", indexdoc.FieldValueExact})
	}

	res, err := x.idx.SearchInContext(ctx, sreq)
	if err != nil {
		return nil, fmt.Errorf("search index query: %w", err)
	}

	docs := make([]search.Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		docs = append(docs, search.Document(hit.Fields))
	}
	return docs, nil
}

// buildQuery assembles the ranked query with its vocabulary scope filter.
func (x *Index) buildQuery(req search.Request) query.Query {
	var base query.Query
	if req.Query == "" {
		base = bleve.NewMatchAllQuery()
	} else {
		exact := bleve.NewTermQuery(req.Query)
		exact.SetField(indexdoc.FieldValueExact)
		exact.SetBoost(10)

		word := bleve.NewMatchQuery(req.Query)
		word.SetField(indexdoc.FieldValue)
		word.SetBoost(5)

		sub := bleve.NewWildcardQuery("*" + escapeWildcard(strings.ToLower(req.Query)) + "*")
		sub.SetField(indexdoc.FieldValue)
		sub.SetBoost(1)

		base = bleve.NewDisjunctionQuery(exact, word, sub)
	}

	if req.VocabularyKey == "" || req.VocabularyKey == "all" {
		return base
	}

	scope := bleve.NewTermQuery(req.VocabularyKey)
	scope.SetField(indexdoc.FieldVocabularyKey)
	return bleve.NewConjunctionQuery(base, scope)
}

// Count reports the number of visible documents.
func (x *Index) Count(ctx context.Context) (uint64, error) {
	return x.idx.DocCount()
}

// escapeWildcard neutralizes the wildcard metacharacters in user text.
func escapeWildcard(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(text)
}

// Package search defines the client abstraction over the term store's
// search index. It is the index-side seam of the dual-write pair: the
// relational store is the store of record, the index is a query-optimized
// mirror with its own, independent commit semantics.
//
// Implementations live in subpackages (see search/bleveindex). Application
// code should depend on search.Client so the index backend can be swapped
// without touching the coordinator.
package search

import "context"

// Document is one index document: the four core term fields plus the
// suffix-named additional fields. Values are plain Go scalars or slices.
type Document map[string]interface{}

// Request describes one ranked query against the index.
type Request struct {
	// VocabularyKey scopes the query to a single vocabulary.
	// Empty or "all" queries across every vocabulary.
	VocabularyKey string

	// Query is the partial-match text. Empty means match all.
	Query string

	// Limit caps the number of hits returned; Start skips that many ranked
	// hits first, so the pair pages deterministically over a stable ordering.
	Limit int
	Start int
}

// Client is the interface the term coordinator holds on the search index.
//
// Writes take a commit flag: committing is the visibility boundary, and
// callers may batch several writes before making them readable. How ranked
// ordering is produced is the index's business; implementations must rank
// exact matches above whole-word partial matches above substring matches,
// breaking ties alphabetically by value.
type Client interface {
	// Upsert writes one document under the given ID, replacing any
	// previous document with that ID.
	Upsert(ctx context.Context, id string, doc Document, commit bool) error

	// Delete removes the document with the given ID. Deleting an absent
	// document is not an error.
	Delete(ctx context.Context, id string, commit bool) error

	// Commit makes all pending writes visible to readers.
	Commit(ctx context.Context) error

	// Get fetches a single document by ID. The boolean reports presence.
	Get(ctx context.Context, id string) (Document, bool, error)

	// Search runs one ranked query and returns the matching documents in
	// rank order.
	Search(ctx context.Context, req Request) ([]Document, error)

	// Count reports the number of visible documents, used by reindex
	// verification and tests.
	Count(ctx context.Context) (uint64, error)

	// Close releases the index resources.
	Close() error
}

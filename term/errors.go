package term

import "errors"

var (
	// ErrURIExists is returned when creating a term whose URI is already
	// registered, detected through the uri_hash unique constraint.
	ErrURIExists = errors.New("term URI already exists")

	// ErrTermNotFound is returned when updating a term whose URI is not
	// in the store of record.
	ErrTermNotFound = errors.New("term URI does not exist")

	// ErrMintExhausted is returned when local URI minting collides on
	// every attempt. With 122 bits of randomness per identifier this
	// points at a misconfigured base URI or a broken random source,
	// not at genuine exhaustion.
	ErrMintExhausted = errors.New("local URI minting exhausted its attempts")

	// ErrIndexWriteFailed wraps a search-index write that failed after
	// the store of record was already updated. The store row stands;
	// the index is behind until the next successful write or a Reindex.
	ErrIndexWriteFailed = errors.New("search index write failed after store write")

	// ErrMissingBaseURI is returned when the coordinator is constructed
	// without the base URI required for local term minting.
	ErrMissingBaseURI = errors.New("missing base URI for local term minting")
)

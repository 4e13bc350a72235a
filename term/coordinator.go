// Package term implements the coordinator at the center of the term store:
// the component that owns dual writes against the relational store of
// record and the search index.
//
// There is no shared transaction between the two systems. Every write goes
// to the store first; only a successful store write is followed by the
// index write, and an index failure after that point is surfaced as
// ErrIndexWriteFailed rather than rolled back. The divergence window this
// opens is deliberate and observable (see the index_divergence_total
// counter and Coordinator.Reindex).
package term

import (
	"context"

	"github.com/google/uuid"

	"github.com/openvocab/termstore/model"
	"github.com/openvocab/termstore/pkg/metrics"
	"github.com/openvocab/termstore/search"
)

// mintAttempts bounds the local URI generation loop. Each attempt uses a
// fresh random identifier, so a second collision is already implausible.
const mintAttempts = 5

// Store is the slice of the relational term repository the coordinator
// needs. *store.Terms implements it.
type Store interface {
	Insert(ctx context.Context, term *model.Term) error
	FindByURI(ctx context.Context, uri string) (*model.Term, error)
	Update(ctx context.Context, term *model.Term) error
	DeleteByURI(ctx context.Context, uri string) (int64, error)
	ForEachBatch(ctx context.Context, batchSize int, fn func(terms []model.Term) error) error
}

// VocabularyFinder resolves vocabulary string keys at term-creation time.
// *vocabulary.Registry implements it.
type VocabularyFinder interface {
	Find(ctx context.Context, stringKey string) (*model.Vocabulary, error)
}

// Logger defines the logging operations the coordinator needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Config holds the coordinator's own settings. The store and index handles
// are passed as collaborators, not configured here.
type Config struct {
	// BaseURI is the prefix local term URIs are minted under, e.g.
	// "https://terms.example.org/". Required.
	BaseURI string `yaml:"base_uri" envconfig:"TERM_BASE_URI"`
}

// Coordinator is stateless apart from its handles and is safe for
// concurrent use; no lock is held across the store write and the index
// write of one operation.
type Coordinator struct {
	cfg     Config
	terms   Store
	vocabs  VocabularyFinder
	index   search.Client
	logger  Logger
	metrics *metrics.Metrics

	// newID produces the random segment of minted URIs. Swappable in
	// tests to force collisions.
	newID func() string
}

// NewCoordinator wires a coordinator from its three collaborators: the
// term repository, the vocabulary registry and the search index client.
// A missing base URI is a configuration error.
func NewCoordinator(cfg Config, terms Store, vocabs VocabularyFinder, index search.Client, logger Logger, m *metrics.Metrics) (*Coordinator, error) {
	if cfg.BaseURI == "" {
		return nil, ErrMissingBaseURI
	}
	return &Coordinator{
		cfg:     cfg,
		terms:   terms,
		vocabs:  vocabs,
		index:   index,
		logger:  logger,
		metrics: m,
		newID:   uuid.NewString,
	}, nil
}

// Commit flushes pending index writes, making batched writes visible.
func (c *Coordinator) Commit(ctx context.Context) error {
	return c.index.Commit(ctx)
}

package term

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openvocab/termstore/indexdoc"
	"github.com/openvocab/termstore/model"
)

const (
	reindexBatchSize = 500
	reindexWorkers   = 4
)

// Reindex rebuilds the search index from the store of record: every term
// row is projected and upserted, then the index is committed once.
//
// This is the explicit repair path for the dual-write divergence window.
// It is caller-invoked, never scheduled, and it only re-adds or overwrites
// documents; index documents whose store row is gone are not removed.
func (c *Coordinator) Reindex(ctx context.Context) (err error) {
	defer func() { c.metrics.ObserveOperation("reindex", err) }()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reindexWorkers)

	var total int
	scanErr := c.terms.ForEachBatch(ctx, reindexBatchSize, func(terms []model.Term) error {
		// The repository reuses the batch slice between callbacks.
		batch := make([]model.Term, len(terms))
		copy(batch, terms)
		total += len(batch)

		g.Go(func() error {
			for i := range batch {
				doc := indexdoc.FromTerm(&batch[i])
				if err := c.index.Upsert(ctx, batch[i].URIHash, doc, false); err != nil {
					return err
				}
			}
			return nil
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if scanErr != nil {
		return scanErr
	}

	if err := c.index.Commit(ctx); err != nil {
		return err
	}

	c.logger.Info("search index rebuilt from store of record", nil, map[string]interface{}{
		"terms": total,
	})
	return nil
}
